package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deviceINI = `
[device]
name = Razer Orbweaver
serial = PM1234
rows = 4
cols = 5
capabilities = set_key_row, set_custom_effect, keypad_set_macro_mode
macro_keys = 183,184
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDevice(t *testing.T) {
	path := writeFile(t, t.TempDir(), "device.ini", deviceINI)

	dev := Device{Name: "fallback", Rows: 1}
	require.NoError(t, LoadDevice(path, &dev))

	assert.Equal(t, Device{
		Name:         "Razer Orbweaver",
		Serial:       "PM1234",
		Rows:         4,
		Cols:         5,
		Capabilities: []string{"set_key_row", "set_custom_effect", "keypad_set_macro_mode"},
		MacroKeys:    []int{183, 184},
	}, dev)
}

func TestLoadDeviceMissingFile(t *testing.T) {
	dev := Device{Name: "fallback"}
	require.NoError(t, LoadDevice(filepath.Join(t.TempDir(), "none.ini"), &dev))
	assert.Equal(t, Device{Name: "fallback"}, dev)
}

func TestLoadDeviceBadMacroKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "device.ini", "[device]\nmacro_keys = 183,abc\n")
	err := LoadDevice(path, &Device{})
	assert.Error(t, err)
}

func TestNewConfigLayers(t *testing.T) {
	dir := t.TempDir()
	ini := writeFile(t, dir, "device.ini", deviceINI)
	js := writeFile(t, dir, "keybindd.json", `{"RpcBindAddress": "127.0.0.1:6000", "Device": {"Rows": 3}}`)

	c, err := NewConfig([]string{"keybindd", "--device", ini, "-c", js, "--name", "Tartarus", "-v", "-v", "--port", "/dev/ttyACM0"})
	require.NoError(t, err)

	assert.False(t, c.WantHelp)
	assert.Equal(t, 2, c.VerboseLevel)
	assert.Equal(t, "Tartarus", c.Device.Name)
	assert.Equal(t, "PM1234", c.Device.Serial)
	assert.Equal(t, 3, c.Device.Rows)
	assert.Equal(t, 5, c.Device.Cols)
	assert.Equal(t, "/dev/ttyACM0", c.LinkPortName)
	assert.Equal(t, "127.0.0.1:6000", c.RpcBindAddress)
	assert.Equal(t, ":4040", c.RestBindAddress)
}

func TestNewConfigNeedsSerial(t *testing.T) {
	dir := t.TempDir()
	_, err := NewConfig([]string{"keybindd", "--device", filepath.Join(dir, "none.ini"), "-c", filepath.Join(dir, "none.json")})
	assert.Error(t, err)

	c, err := NewConfig([]string{"keybindd", "--device", filepath.Join(dir, "none.ini"), "-c", filepath.Join(dir, "none.json"), "-s", "XY99"})
	require.NoError(t, err)
	assert.Equal(t, "XY99", c.Device.Serial)
	assert.Equal(t, "/etc/keybindd", c.ConfigDir)
}
