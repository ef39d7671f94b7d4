package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/ini.v1"
	"leguru.net/keybindd/chroma"
	"leguru.net/keybindd/logger"
)

// Device describes the keypad. Values come from the [device] section of the
// ini file and can be overridden from the command line or the JSON file.
type Device struct {
	Name         string   `json:"Name"`
	Serial       string   `json:"Serial"`
	Rows         int      `json:"Rows"`
	Cols         int      `json:"Cols"`
	Capabilities []string `json:"Capabilities"`
	MacroKeys    []int    `json:"MacroKeys"`
}

type Config struct {
	WantHelp         bool
	ConfigFile       string
	DeviceFile       string
	ConfigDir        string `json:"ConfigDir"`
	KeyboardPath     string `json:"KeyboardPath"`
	VirtualName      string `json:"VirtualName"`
	LinkPortName     string `json:"LinkPortName"`
	LinkBaudRate     int    `json:"LinkBaudRate"`
	VerboseLevel     int    `json:"VerboseLevel"`
	RestBindAddress  string `json:"RestBindAddress"`
	RpcBindAddress   string `json:"RpcBindAddress"`
	SshBindAddress   string `json:"SshBindAddress"`
	SshHostKeyPath   string `json:"SshHostKeyPath"`
	Device           Device `json:"Device"`
	StaticAssetsPath string `json:"StaticAssetsPath"`
}

func defaults() Config {
	return Config{
		WantHelp:        true,
		ConfigFile:      "keybindd.json",
		DeviceFile:      "/etc/keybindd/device.ini",
		ConfigDir:       "/etc/keybindd",
		VirtualName:     "keybindd virtual keyboard",
		LinkBaudRate:    115200,
		RestBindAddress: ":4040",
		RpcBindAddress:  ":50051",
		SshBindAddress:  "0.0.0.0:2024",
		SshHostKeyPath:  ".ssh/keybindd_ed25519",
		Device: Device{
			Name: "Razer Tartarus",
			Rows: 4,
			Cols: 6,
		},
	}
}

// NewConfig parses args (program name first) into a Config. Device defaults
// are read from the ini file, command line flags win over it and the JSON
// file, when present, is applied last.
func NewConfig(args []string) (*Config, error) {
	config := defaults()
	var serial, name string

	app := &cli.App{
		Name:  "keybindd",
		Usage: "key binding daemon for keypads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "serial",
				Aliases:     []string{"s"},
				Usage:       "Serial number of the keypad, names the binding file",
				Destination: &serial,
			},
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Keypad name, used to find the evdev device",
				Destination: &name,
			},
			&cli.StringFlag{
				Name:        "config_dir",
				Value:       config.ConfigDir,
				Usage:       "Directory holding the binding files",
				Destination: &config.ConfigDir,
			},
			&cli.StringFlag{
				Name:        "keyboard",
				Aliases:     []string{"k"},
				Usage:       "evdev path of the keypad, searched by name when empty",
				Destination: &config.KeyboardPath,
			},
			&cli.StringFlag{
				Name:        "virtual_name",
				Value:       config.VirtualName,
				Usage:       "Name of the uinput device",
				Destination: &config.VirtualName,
			},
			&cli.StringFlag{
				Name:        "port",
				Aliases:     []string{"p"},
				Usage:       "Serial port of the LED controller bridge, LEDs are disabled when empty",
				Destination: &config.LinkPortName,
			},
			&cli.IntFlag{
				Name:        "baud",
				Value:       config.LinkBaudRate,
				Aliases:     []string{"b"},
				Destination: &config.LinkBaudRate,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Count:   &config.VerboseLevel,
			},
			&cli.StringFlag{
				Name:        "rest_bind_address",
				Value:       config.RestBindAddress,
				Aliases:     []string{"d"},
				Usage:       "Bind address for the REST server",
				Destination: &config.RestBindAddress,
			},
			&cli.StringFlag{
				Name:        "rpc_bind_address",
				Value:       config.RpcBindAddress,
				Usage:       "Bind address for the rpc server",
				Destination: &config.RpcBindAddress,
			},
			&cli.StringFlag{
				Name:        "ssh_bind_address",
				Value:       config.SshBindAddress,
				Usage:       "Bind address for the ssh monitor, disabled when empty",
				Destination: &config.SshBindAddress,
			},
			&cli.StringFlag{
				Name:        "static",
				Usage:       "Directory served under / by the REST server",
				Destination: &config.StaticAssetsPath,
			},
			&cli.StringFlag{
				Name:        "device",
				Value:       config.DeviceFile,
				Usage:       "ini file describing the keypad",
				Destination: &config.DeviceFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Value:       config.ConfigFile,
				Destination: &config.ConfigFile,
			},
		},
		Action: func(cCtx *cli.Context) error {
			config.WantHelp = false
			if err := LoadDevice(config.DeviceFile, &config.Device); err != nil {
				return err
			}
			if cCtx.IsSet("serial") {
				config.Device.Serial = serial
			}
			if cCtx.IsSet("name") {
				config.Device.Name = name
			}
			return nil
		},
	}

	if err := app.Run(args); err != nil {
		return nil, err
	}
	if config.WantHelp {
		return &config, nil
	}

	if err := overlayJSON(config.ConfigFile, &config); err != nil {
		return nil, err
	}
	if config.Device.Serial == "" {
		return nil, errors.New("device serial number is not configured")
	}
	return &config, nil
}

// LoadDevice fills dev from the [device] section of an ini file. A missing file
// leaves dev untouched.
func LoadDevice(path string, dev *Device) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.WithField("file", path).Debug("No device file")
		return nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("device file %s: %w", path, err)
	}
	sec := cfg.Section("device")
	dev.Name = sec.Key("name").MustString(dev.Name)
	dev.Serial = sec.Key("serial").MustString(dev.Serial)
	dev.Rows = sec.Key("rows").MustInt(dev.Rows)
	dev.Cols = sec.Key("cols").MustInt(dev.Cols)
	if sec.HasKey("capabilities") {
		dev.Capabilities = chroma.ParseCapabilities(sec.Key("capabilities").String())
	}
	if sec.HasKey("macro_keys") {
		codes, err := sec.Key("macro_keys").StrictInts(",")
		if err != nil {
			return fmt.Errorf("device file %s: macro_keys: %w", path, err)
		}
		dev.MacroKeys = codes
	}
	logger.WithFields(logger.Fields{"file": path, "name": dev.Name, "serial": dev.Serial}).Debug("Device file loaded")
	return nil
}

func overlayJSON(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	logger.WithField("file", path).Debug("Config file applied")
	return nil
}
