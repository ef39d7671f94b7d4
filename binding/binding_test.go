package binding

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"leguru.net/keybindd/chroma"
	"leguru.net/keybindd/input"
	"leguru.net/keybindd/profile"
)

type keyEvent struct {
	code int
	edge input.Edge
}

type fakeKeys struct {
	events []keyEvent
	closes int
	err    error
}

func (k *fakeKeys) Inject(code int, edge input.Edge) error {
	k.events = append(k.events, keyEvent{code, edge})
	return k.err
}

func (k *fakeKeys) Close() error {
	k.closes++
	if k.closes > 1 {
		return input.ErrClosed
	}
	return nil
}

type fakeDevice struct {
	caps      map[string]bool
	rows      int
	cols      int
	keyRows   [][]byte
	customs   int
	effects   []uint8
	macroMode []bool
	leds      map[chroma.LEDChannel][]bool
}

func newFakeDevice(caps ...string) *fakeDevice {
	d := &fakeDevice{caps: map[string]bool{}, rows: 4, cols: 5, leds: map[chroma.LEDChannel][]bool{}}
	for _, c := range caps {
		d.caps[c] = true
	}
	return d
}

func allCaps() []string {
	return []string{
		chroma.CapSetKeyRow, chroma.CapCustomEffect, chroma.CapMacroMode, chroma.CapMacroEffect,
		chroma.CapProfileLEDRed, chroma.CapProfileLEDGreen, chroma.CapProfileLEDBlue,
	}
}

func (d *fakeDevice) HasCapability(name string) bool { return d.caps[name] }
func (d *fakeDevice) MatrixDims() (int, int)         { return d.rows, d.cols }
func (d *fakeDevice) SetKeyRow(payload []byte) error {
	d.keyRows = append(d.keyRows, payload)
	return nil
}
func (d *fakeDevice) SetCustom() error {
	d.customs++
	return nil
}
func (d *fakeDevice) SetMacroEffect(effect uint8) error {
	d.effects = append(d.effects, effect)
	return nil
}
func (d *fakeDevice) SetMacroMode(on bool) error {
	d.macroMode = append(d.macroMode, on)
	return nil
}
func (d *fakeDevice) SetProfileLED(channel chroma.LEDChannel, on bool) error {
	d.leds[channel] = append(d.leds[channel], on)
	return nil
}

type fakeShell struct {
	mu       sync.Mutex
	commands []string
}

func (s *fakeShell) Run(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, command)
}

type fixture struct {
	store  *profile.Store
	keys   *fakeKeys
	device *fakeDevice
	shell  *fakeShell
	sleeps []time.Duration
	m      *Manager
}

func newFixture(t *testing.T, caps ...string) *fixture {
	t.Helper()
	store, err := profile.Open(profile.FileName(t.TempDir(), "PM1234"))
	require.NoError(t, err)
	f := &fixture{store: store, keys: &fakeKeys{}, device: newFakeDevice(caps...), shell: &fakeShell{}}
	f.m, err = New(store, f.keys, f.device,
		WithShell(f.shell),
		WithSleep(func(d time.Duration) { f.sleeps = append(f.sleeps, d) }),
	)
	require.NoError(t, err)
	return f
}

func (f *fixture) bind(t *testing.T, mapName string, key int, actions ...profile.Action) {
	t.Helper()
	for _, a := range actions {
		_, err := f.m.AddAction(0, mapName, key, a)
		require.NoError(t, err)
	}
}

func act(typ profile.ActionType, value string) profile.Action {
	return profile.Action{Type: typ, Value: value}
}

func TestNewActivatesDefaultProfile(t *testing.T) {
	f := newFixture(t)

	s := f.m.Session()
	assert.Equal(t, profile.ID(0), s.ProfileID)
	assert.Equal(t, profile.DefaultProfileName, s.ProfileName)
	assert.Equal(t, profile.DefaultMapName, s.MapName)
	assert.Nil(t, s.ShiftKey)
	assert.False(t, s.MacroMode)
}

func TestNewFallsBackToLowestID(t *testing.T) {
	store, err := profile.Open(profile.FileName(t.TempDir(), "PM1234"))
	require.NoError(t, err)
	_, err = store.AddProfile("Games", "Base")
	require.NoError(t, err)
	require.NoError(t, store.RemoveProfile(0))

	m, err := New(store, &fakeKeys{}, nil)
	require.NoError(t, err)
	assert.Equal(t, profile.ID(1), m.Session().ProfileID)
	assert.Equal(t, "Base", m.ActiveMap())
}

func TestPassthroughTracksPressedKeys(t *testing.T) {
	f := newFixture(t)

	codes := []int{30, 31, 32, 44}
	for _, c := range codes {
		f.m.Dispatch(c, input.Down)
	}
	assert.Equal(t, codes, f.m.Pressed().Held())

	f.m.Dispatch(31, input.Hold)
	for _, c := range codes {
		f.m.Dispatch(c, input.Up)
	}
	assert.Zero(t, f.m.Pressed().Len())

	require.Len(t, f.keys.events, 9)
	assert.Equal(t, keyEvent{30, input.Down}, f.keys.events[0])
	assert.Equal(t, keyEvent{31, input.Hold}, f.keys.events[4])
	assert.Equal(t, keyEvent{44, input.Up}, f.keys.events[8])
}

func TestReleaseOfUnheldKeyIsNoop(t *testing.T) {
	f := newFixture(t)

	f.m.Dispatch(30, input.Up)
	assert.Zero(t, f.m.Pressed().Len())
	assert.Equal(t, []keyEvent{{30, input.Up}}, f.keys.events)
}

func TestBoundKeyRunsActionsInOrder(t *testing.T) {
	f := newFixture(t)
	f.bind(t, profile.DefaultMapName, 30,
		act(profile.ActionKey, "29"),
		act(profile.ActionKey, "46"),
		act(profile.ActionRelease, "29"),
		act(profile.ActionExecute, "notify-send hi"),
		act(profile.ActionSleep, "2"),
	)

	f.m.Dispatch(30, input.Down)

	assert.Equal(t, []keyEvent{{29, input.Down}, {46, input.Down}, {29, input.Up}}, f.keys.events)
	assert.Equal(t, []string{"notify-send hi"}, f.shell.commands)
	assert.Equal(t, []time.Duration{2 * time.Second}, f.sleeps)
	assert.False(t, f.m.Pressed().IsHeld(30))
}

func TestBoundKeyReleaseOnlyReplaysKeysAndSleeps(t *testing.T) {
	f := newFixture(t)
	f.bind(t, profile.DefaultMapName, 30,
		act(profile.ActionKey, "46"),
		act(profile.ActionExecute, "true"),
		act(profile.ActionSleep, "1"),
		act(profile.ActionRelease, "29"),
	)

	f.m.Dispatch(30, input.Up)

	assert.Equal(t, []keyEvent{{46, input.Up}}, f.keys.events)
	assert.Empty(t, f.shell.commands)
	assert.Equal(t, []time.Duration{time.Second}, f.sleeps)
}

func TestMacroKeyReleaseIsSuppressed(t *testing.T) {
	f := newFixture(t)
	f.bind(t, profile.DefaultMapName, 183, act(profile.ActionKey, "46"))

	f.m.Dispatch(183, input.Down)
	f.m.Dispatch(183, input.Up)

	assert.Equal(t, []keyEvent{{46, input.Down}}, f.keys.events)
}

func TestMacroKeysCanBeOverridden(t *testing.T) {
	store, err := profile.Open(profile.FileName(t.TempDir(), "PM1234"))
	require.NoError(t, err)
	keys := &fakeKeys{}
	m, err := New(store, keys, nil, WithMacroKeys([]int{190}))
	require.NoError(t, err)
	_, err = m.AddAction(0, profile.DefaultMapName, 183, act(profile.ActionKey, "46"))
	require.NoError(t, err)
	_, err = m.AddAction(0, profile.DefaultMapName, 190, act(profile.ActionKey, "47"))
	require.NoError(t, err)

	m.Dispatch(183, input.Up)
	m.Dispatch(190, input.Up)

	assert.Equal(t, []keyEvent{{46, input.Up}}, keys.events)
}

func TestShiftLayer(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.AddMap(0, "Fn"))
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionShift, "Fn"))
	f.bind(t, profile.DefaultMapName, 31, act(profile.ActionKey, "60"))
	f.bind(t, "Fn", 31, act(profile.ActionKey, "61"))

	f.m.Dispatch(30, input.Down)
	s := f.m.Session()
	assert.Equal(t, "Fn", s.MapName)
	assert.Equal(t, profile.DefaultMapName, s.PreviousMap)
	require.NotNil(t, s.ShiftKey)
	assert.Equal(t, 30, *s.ShiftKey)

	f.m.Dispatch(30, input.Hold)
	f.m.Dispatch(31, input.Down)
	f.m.Dispatch(30, input.Up)

	s = f.m.Session()
	assert.Equal(t, profile.DefaultMapName, s.MapName)
	assert.Nil(t, s.ShiftKey)
	assert.Equal(t, []keyEvent{{61, input.Down}, {61, input.Up}}, f.keys.events)
	assert.Zero(t, f.m.Pressed().Len())
}

func TestShiftReleaseForcesHeldKeysUp(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.AddMap(0, "Fn"))
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionShift, "Fn"))

	f.m.Dispatch(30, input.Down)
	f.m.Dispatch(44, input.Down)
	f.m.Dispatch(45, input.Down)
	f.m.Dispatch(30, input.Up)

	assert.Equal(t, []keyEvent{
		{44, input.Down}, {45, input.Down},
		{44, input.Up}, {45, input.Up},
	}, f.keys.events)
	assert.Zero(t, f.m.Pressed().Len())
}

func TestShiftToUnknownMapKeepsState(t *testing.T) {
	f := newFixture(t)
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionShift, "Nope"), act(profile.ActionKey, "46"))

	f.m.Dispatch(30, input.Down)

	s := f.m.Session()
	assert.Equal(t, profile.DefaultMapName, s.MapName)
	assert.Nil(t, s.ShiftKey)
	assert.Equal(t, []keyEvent{{46, input.Down}}, f.keys.events)
}

func TestMapActionClearsShift(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.AddMap(0, "Fn"))
	require.NoError(t, f.m.AddMap(0, "Num"))
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionShift, "Fn"))
	f.bind(t, "Fn", 31, act(profile.ActionMap, "Num"))

	f.m.Dispatch(30, input.Down)
	f.m.Dispatch(31, input.Down)

	s := f.m.Session()
	assert.Equal(t, "Num", s.MapName)
	assert.Nil(t, s.ShiftKey)

	// 30 is no longer a shift key, so its release passes through.
	f.m.Dispatch(30, input.Up)
	assert.Equal(t, "Num", f.m.ActiveMap())
	assert.Equal(t, []keyEvent{{30, input.Up}}, f.keys.events)
}

func TestProfileActionSwitchesProfile(t *testing.T) {
	f := newFixture(t)
	id, err := f.m.AddProfile("Games", "Base")
	require.NoError(t, err)
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionProfile, "Unknown"), act(profile.ActionProfile, "Games"))

	f.m.Dispatch(30, input.Down)

	s := f.m.Session()
	assert.Equal(t, id, s.ProfileID)
	assert.Equal(t, "Games", s.ProfileName)
	assert.Equal(t, "Base", s.MapName)
	assert.Nil(t, s.ShiftKey)
}

func TestSwitchingProfileActivatesDefaultMap(t *testing.T) {
	f := newFixture(t)
	_, err := f.m.AddProfile("Work", "Office")
	require.NoError(t, err)
	_, err = f.m.AddProfile("Games", "")
	require.NoError(t, err)

	for _, info := range f.m.ListProfiles() {
		require.NoError(t, f.m.SetActiveProfile(info.ID))
		assert.Equal(t, info.DefaultMap, f.m.ActiveMap())
		assert.Equal(t, info, f.m.ActiveProfile())
	}
}

func TestSetActiveProfileUnknown(t *testing.T) {
	f := newFixture(t)

	err := f.m.SetActiveProfile(42)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
	assert.Equal(t, profile.ID(0), f.m.Session().ProfileID)
}

func TestSetActiveMapUnknownKeepsState(t *testing.T) {
	f := newFixture(t)

	err := f.m.SetActiveMap("Nope")
	assert.ErrorIs(t, err, profile.ErrMapNotFound)
	assert.Equal(t, profile.DefaultMapName, f.m.ActiveMap())
}

func TestMatrixPushedOnlyWhenEnabled(t *testing.T) {
	f := newFixture(t, allCaps()...)
	require.NoError(t, f.m.AddMap(0, "Plain"))
	require.NoError(t, f.m.AddMap(0, "Lit"))

	require.NoError(t, f.m.SetActiveMap("Plain"))
	assert.Empty(t, f.device.keyRows)
	assert.Zero(t, f.device.customs)

	require.NoError(t, f.store.SetMatrix(0, "Lit", profile.Matrix{"1": {"2": {10, 20, 30}}}))
	require.NoError(t, f.m.SetActiveMap("Lit"))
	require.Len(t, f.device.keyRows, 1)
	assert.Equal(t, 1, f.device.customs)

	payload := f.device.keyRows[0]
	assert.Len(t, payload, 4*(3+3*5))
	row1 := payload[18:36]
	assert.Equal(t, []byte{1, 0, 4}, row1[:3])
	assert.Equal(t, []byte{10, 20, 30}, row1[3+2*3:3+3*3])
}

func TestMatrixNeedsCapabilities(t *testing.T) {
	f := newFixture(t, chroma.CapSetKeyRow)
	require.NoError(t, f.m.SetMatrix(0, profile.DefaultMapName, profile.Matrix{"0": {"0": {1, 2, 3}}}))

	assert.Empty(t, f.device.keyRows)
	assert.Zero(t, f.device.customs)
}

func TestSetMatrixOnActiveMapRefreshesDevice(t *testing.T) {
	f := newFixture(t, allCaps()...)
	require.NoError(t, f.m.AddMap(0, "Other"))

	require.NoError(t, f.m.SetMatrix(0, "Other", profile.Matrix{"0": {"0": {1, 2, 3}}}))
	assert.Empty(t, f.device.keyRows)

	require.NoError(t, f.m.SetMatrix(0, profile.DefaultMapName, profile.Matrix{"0": {"0": {1, 2, 3}}}))
	assert.Len(t, f.device.keyRows, 1)

	mp, err := f.m.GetMap(0, profile.DefaultMapName)
	require.NoError(t, err)
	assert.True(t, mp.IsUsingMatrix)
}

func TestProfileLEDsFollowCapabilities(t *testing.T) {
	f := newFixture(t, chroma.CapProfileLEDRed, chroma.CapProfileLEDBlue)

	require.NoError(t, f.m.SetProfileLEDs(0, profile.DefaultMapName, LEDs{Red: true, Green: true, Blue: false}))

	assert.Equal(t, []bool{true}, f.device.leds[chroma.LEDRed])
	assert.Equal(t, []bool{false}, f.device.leds[chroma.LEDBlue])
	assert.Empty(t, f.device.leds[chroma.LEDGreen])

	leds, err := f.m.GetProfileLEDs(0, profile.DefaultMapName)
	require.NoError(t, err)
	assert.Equal(t, LEDs{Red: true, Green: true}, leds)
}

func TestNoDevice(t *testing.T) {
	store, err := profile.Open(profile.FileName(t.TempDir(), "PM1234"))
	require.NoError(t, err)
	m, err := New(store, &fakeKeys{}, nil)
	require.NoError(t, err)

	require.NoError(t, m.SetMatrix(0, profile.DefaultMapName, profile.Matrix{"0": {"0": {1, 2, 3}}}))
	require.NoError(t, m.SetMacroMode(true))
	on, key := m.MacroMode()
	assert.True(t, on)
	assert.Nil(t, key)
}

func TestClearActionsLeavesEmptySequence(t *testing.T) {
	f := newFixture(t)
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionKey, "46"))

	require.NoError(t, f.m.ClearActions(0, profile.DefaultMapName, 30))

	actions, err := f.m.GetActions(0, profile.DefaultMapName, 30)
	require.NoError(t, err)
	assert.NotNil(t, actions)
	assert.Empty(t, actions)

	mp, err := f.m.GetMap(0, profile.DefaultMapName)
	require.NoError(t, err)
	assert.Contains(t, mp.Binding, "30")
}

func TestAddThenUpdateAction(t *testing.T) {
	f := newFixture(t)

	pos, err := f.m.AddAction(0, profile.DefaultMapName, 30, act(profile.ActionKey, "46"))
	require.NoError(t, err)
	require.NoError(t, f.m.UpdateAction(0, profile.DefaultMapName, 30, pos, act(profile.ActionKey, "47")))

	actions, err := f.m.GetActions(0, profile.DefaultMapName, 30)
	require.NoError(t, err)
	assert.Equal(t, []profile.Action{act(profile.ActionKey, "47")}, actions)

	err = f.m.RemoveAction(0, profile.DefaultMapName, 30, 3)
	assert.ErrorIs(t, err, profile.ErrActionNotFound)
}

func TestRemoveProfile(t *testing.T) {
	f := newFixture(t)
	id, err := f.m.AddProfile("Games", "")
	require.NoError(t, err)

	assert.ErrorIs(t, f.m.RemoveProfile(0), profile.ErrProfileInUse)
	require.NoError(t, f.m.RemoveProfile(id))
	assert.Len(t, f.m.ListProfiles(), 1)
}

func TestMacroMode(t *testing.T) {
	f := newFixture(t, allCaps()...)

	require.NoError(t, f.m.SetMacroMode(true))
	assert.Equal(t, []uint8{chroma.EffectBlinking}, f.device.effects)
	assert.Equal(t, []bool{true}, f.device.macroMode)

	key := 59
	require.NoError(t, f.m.SetMacroKey(&key))
	assert.Equal(t, []uint8{chroma.EffectBlinking, chroma.EffectStatic}, f.device.effects)
	on, got := f.m.MacroMode()
	assert.True(t, on)
	require.NotNil(t, got)
	assert.Equal(t, 59, *got)

	require.NoError(t, f.m.SetMacroMode(false))
	on, got = f.m.MacroMode()
	assert.False(t, on)
	assert.Nil(t, got)
	assert.Equal(t, []bool{true, false}, f.device.macroMode)
}

func TestSetMacroKeyClearsOnlyThatKey(t *testing.T) {
	f := newFixture(t)
	f.bind(t, profile.DefaultMapName, 59, act(profile.ActionKey, "46"), act(profile.ActionSleep, "1"))
	f.bind(t, profile.DefaultMapName, 60, act(profile.ActionKey, "47"))
	require.NoError(t, f.m.AddMap(0, "Fn"))
	f.bind(t, "Fn", 59, act(profile.ActionKey, "48"))

	key := 59
	require.NoError(t, f.m.SetMacroKey(&key))

	mp, err := f.m.GetMap(0, profile.DefaultMapName)
	require.NoError(t, err)
	assert.Equal(t, []profile.Action{}, mp.Binding["59"])
	assert.Equal(t, []profile.Action{act(profile.ActionKey, "47")}, mp.Binding["60"])

	fn, err := f.m.GetMap(0, "Fn")
	require.NoError(t, err)
	assert.Equal(t, []profile.Action{act(profile.ActionKey, "48")}, fn.Binding["59"])

	require.NoError(t, f.m.SetMacroKey(nil))
	_, got := f.m.MacroMode()
	assert.Nil(t, got)
}

func TestMacroRecordingAppendsPassthroughKeys(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.SetMacroMode(true))
	key := 59
	require.NoError(t, f.m.SetMacroKey(&key))

	for _, c := range []int{35, 18} {
		f.m.Dispatch(c, input.Down)
		f.m.Dispatch(c, input.Up)
	}
	f.m.Dispatch(184, input.Down)

	actions, err := f.m.GetActions(0, profile.DefaultMapName, 59)
	require.NoError(t, err)
	assert.Equal(t, []profile.Action{act(profile.ActionKey, "35"), act(profile.ActionKey, "18")}, actions)
}

func TestInjectionFailureDoesNotStopDispatch(t *testing.T) {
	f := newFixture(t)
	f.keys.err = errors.New("uinput gone")
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionKey, "46"), act(profile.ActionExecute, "true"))

	f.m.Dispatch(30, input.Down)
	f.m.Dispatch(31, input.Down)

	assert.Len(t, f.keys.events, 2)
	assert.Equal(t, []string{"true"}, f.shell.commands)
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionKey, "46"))
	f.m.Dispatch(44, input.Down)

	st := f.m.Status()
	assert.Equal(t, profile.DefaultMapName, st.MapName)
	assert.Equal(t, []int{44}, st.Pressed)
	assert.Equal(t, []profile.Action{act(profile.ActionKey, "46")}, st.Binding["30"])
}

func TestCloseOnce(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.m.Close())
	require.NoError(t, f.m.Close())
	assert.Equal(t, 1, f.keys.closes)
}

func TestRenderMatrixSkipsCellsOutsideFrame(t *testing.T) {
	dims := func() (int, int) { return 2, 2 }

	_, _, err := RenderMatrix(profile.Matrix{"x": {"0": {1, 1, 1}}}, dims)
	assert.ErrorIs(t, err, profile.ErrInvalidMatrix)

	frame, skipped, err := RenderMatrix(profile.Matrix{"0": {"5": {1, 1, 1}}, "1": {"1": {9, 8, 7}}}, dims)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, [3]byte{9, 8, 7}, frame.KeyColour(1, 1))
	assert.Equal(t, [3]byte{}, frame.KeyColour(0, 0))
}

func TestSetMatrixRejectsCellsOutsideDevice(t *testing.T) {
	f := newFixture(t, allCaps()...)

	err := f.m.SetMatrix(0, profile.DefaultMapName, profile.Matrix{"9": {"9": {1, 2, 3}}, "0": {"0": {4, 5, 6}}})
	assert.ErrorIs(t, err, profile.ErrInvalidMatrix)
	err = f.m.SetMatrix(0, profile.DefaultMapName, profile.Matrix{"row": {"0": {1, 2, 3}}})
	assert.ErrorIs(t, err, profile.ErrInvalidMatrix)

	mp, err := f.m.GetMap(0, profile.DefaultMapName)
	require.NoError(t, err)
	assert.False(t, mp.IsUsingMatrix)
	assert.Empty(t, f.device.keyRows)
}

func TestStoredMatrixLargerThanDeviceStillPushed(t *testing.T) {
	f := newFixture(t, allCaps()...)
	require.NoError(t, f.m.AddMap(0, "Lit"))
	require.NoError(t, f.store.SetMatrix(0, "Lit", profile.Matrix{"9": {"9": {1, 2, 3}}, "0": {"0": {4, 5, 6}}}))

	require.NoError(t, f.m.SetActiveMap("Lit"))

	require.Len(t, f.device.keyRows, 1)
	assert.Equal(t, 1, f.device.customs)
	assert.Equal(t, []byte{4, 5, 6}, f.device.keyRows[0][3:6])
}

func TestUnboundMacroKeyPassesThroughWhenNothingRecorded(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.SetMacroMode(true))
	key := 59
	require.NoError(t, f.m.SetMacroKey(&key))
	require.NoError(t, f.m.SetMacroMode(false))

	f.m.Dispatch(59, input.Down)
	f.m.Dispatch(59, input.Up)

	assert.Equal(t, []keyEvent{{59, input.Down}, {59, input.Up}}, f.keys.events)
	mp, err := f.m.GetMap(0, profile.DefaultMapName)
	require.NoError(t, err)
	_, present := mp.Binding["59"]
	assert.False(t, present)
}

func TestMapActionToUnknownMapKeepsShift(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.AddMap(0, "Fn"))
	f.bind(t, profile.DefaultMapName, 30, act(profile.ActionShift, "Fn"))
	f.bind(t, "Fn", 31, act(profile.ActionMap, "Nope"))

	f.m.Dispatch(30, input.Down)
	f.m.Dispatch(31, input.Down)

	s := f.m.Session()
	assert.Equal(t, "Fn", s.MapName)
	require.NotNil(t, s.ShiftKey)
	assert.Equal(t, 30, *s.ShiftKey)

	f.m.Dispatch(30, input.Up)
	assert.Equal(t, profile.DefaultMapName, f.m.ActiveMap())
	assert.Nil(t, f.m.Session().ShiftKey)
}

func TestPressedKeys(t *testing.T) {
	p := NewPressedKeys()
	p.Press(5)
	p.Press(5)
	p.Press(2)

	assert.Equal(t, []int{2, 5}, p.Held())
	assert.True(t, p.Release(5))
	assert.False(t, p.Release(5))
	assert.False(t, p.IsHeld(5))

	p.Reset()
	assert.Zero(t, p.Len())
}
