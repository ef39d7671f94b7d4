package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"leguru.net/keybindd/config"
)

func TestRunReturnsErrorWhenKeyboardIsMissing(t *testing.T) {
	dir := t.TempDir()
	c := &config.Config{
		ConfigDir:    dir,
		KeyboardPath: filepath.Join(dir, "no-such-event"),
		Device:       config.Device{Name: "Test pad", Serial: "PM1234", Rows: 4, Cols: 6},
	}

	err := run(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyboard")
}

func TestShortHash(t *testing.T) {
	saved := vcsHash
	defer func() { vcsHash = saved }()

	vcsHash = ""
	assert.Equal(t, "devel", shortHash())
	vcsHash = "0123456789abcdef"
	assert.Equal(t, "01234567", shortHash())
}
