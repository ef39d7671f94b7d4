package main

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"leguru.net/keybindd/profile"
)

func argsContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestParseKeyRef(t *testing.T) {
	ref, err := parseKeyRef(argsContext(t, "2", "Fn", "0x1e"))
	require.NoError(t, err)
	assert.Equal(t, profile.ID(2), ref.ProfileID)
	assert.Equal(t, "Fn", ref.Map)
	assert.Equal(t, 30, ref.Key)

	_, err = parseKeyRef(argsContext(t, "2", "Fn"))
	assert.ErrorContains(t, err, "need 3 arguments")

	_, err = parseKeyRef(argsContext(t, "x", "Fn", "30"))
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	a, err := parseAction(argsContext(t, "0", "Default", "30", "shift", "Fn"), 3)
	require.NoError(t, err)
	assert.Equal(t, profile.Action{Type: profile.ActionShift, Value: "Fn"}, a)

	_, err = parseAction(argsContext(t, "0", "Default", "30", "sleep", "soon"), 3)
	assert.ErrorIs(t, err, profile.ErrInvalidAction)

	_, err = parseAction(argsContext(t, "0", "Default", "30", "launch", "x"), 3)
	assert.ErrorIs(t, err, profile.ErrInvalidAction)
}

func TestParsePosition(t *testing.T) {
	pos, err := parsePosition(argsContext(t, "0", "Default", "30", "4"), 3)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)

	_, err = parsePosition(argsContext(t, "0", "Default", "30"), 3)
	assert.Error(t, err)
}

func TestConfirmWithYes(t *testing.T) {
	c := &ctl{yes: true}
	ok, err := c.confirm("Remove?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProfilesTable(t *testing.T) {
	out := profilesTable([]profile.ProfileInfo{
		{ID: 0, Name: "Default", DefaultMap: "Default"},
		{ID: 3, Name: "Games", DefaultMap: "Base"},
	}, 3)
	assert.Contains(t, out, "Games")
	assert.Contains(t, out, "Base")
	assert.Contains(t, out, "*")
}

func TestBindingsTableSortsKeys(t *testing.T) {
	out := bindingsTable(map[string][]profile.Action{
		"100": {{Type: profile.ActionKey, Value: "46"}},
		"9":   {{Type: profile.ActionMap, Value: "Fn"}, {Type: profile.ActionSleep, Value: "1"}},
	})
	assert.Contains(t, out, "map:Fn, sleep:1")
	assert.Less(t, bytes.Index([]byte(out), []byte("map:Fn")), bytes.Index([]byte(out), []byte("key:46")))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, profile.Action{Type: profile.ActionKey, Value: "30"}))
	assert.JSONEq(t, `{"type":"key","value":"30"}`, buf.String())
}
