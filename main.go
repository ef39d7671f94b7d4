package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/chroma"
	"leguru.net/keybindd/config"
	"leguru.net/keybindd/input"
	"leguru.net/keybindd/logger"
	"leguru.net/keybindd/profile"
	"leguru.net/keybindd/rest"
	"leguru.net/keybindd/rpc"
	"leguru.net/keybindd/tui"
)

const (
	programName        = "keybindd"
	programDescription = "key binding daemon for gaming keypads"
)

var (
	vcsHash  string
	vcsTime  time.Time
	vcsDirty bool
)

func waitForTermination(cancel context.CancelFunc) {
	terminationRequested := make(chan os.Signal, 1)
	signal.Notify(terminationRequested, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-terminationRequested
	logger.Info("Program termination requested")
	cancel()
}

func getBuildInfo() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		logger.Fatal("Failed to read build info")
	}

	for _, kv := range bi.Settings {
		switch kv.Key {
		case "vcs.revision":
			vcsHash = kv.Value
		case "vcs.time":
			vcsTime, _ = time.Parse(time.RFC3339, kv.Value)
		case "vcs.modified":
			vcsDirty = kv.Value == "true"
		}
	}
}

func shortHash() string {
	if len(vcsHash) > 8 {
		return vcsHash[:8]
	}
	if vcsHash == "" {
		return "devel"
	}
	return vcsHash
}

func initConfig() *config.Config {
	c, err := config.NewConfig(os.Args)
	if err != nil {
		logger.Fatal("Invalid config options: ", err)
	}

	if c.WantHelp {
		os.Exit(0)
	}

	logger.SetVerbosity(c.VerboseLevel)
	return c
}

// openDevice returns nil when no link port is configured so the manager sees
// a missing device rather than one with no capabilities.
func openDevice(c *config.Config) (binding.Device, func()) {
	if c.LinkPortName == "" {
		logger.Warn("No chroma link port configured, lighting is disabled")
		return nil, func() {}
	}
	link, err := chroma.OpenSerialLink(c.LinkPortName, c.LinkBaudRate)
	if err != nil {
		logger.WithError(err).Error("Chroma link unavailable, lighting is disabled")
		return nil, func() {}
	}
	dev := chroma.NewDevice(chroma.DeviceInfo{
		Name:         c.Device.Name,
		Serial:       c.Device.Serial,
		Rows:         c.Device.Rows,
		Cols:         c.Device.Cols,
		Capabilities: c.Device.Capabilities,
	}, link)
	return dev, func() {
		if err := dev.Close(); err != nil {
			logger.WithError(err).Warn("Closing chroma device")
		}
	}
}

func openKeyboard(c *config.Config) (*input.Keyboard, error) {
	path := c.KeyboardPath
	if path == "" {
		found, err := input.FindKeyboard(c.Device.Name)
		if err != nil {
			return nil, err
		}
		path = found
	}
	return input.OpenKeyboard(path)
}

// run owns every device the daemon opens. Errors are returned rather than
// fatal so the deferred closes run on all exit paths.
func run(ctx context.Context, config *config.Config) error {
	store, err := profile.Open(profile.FileName(config.ConfigDir, config.Device.Serial))
	if err != nil {
		return fmt.Errorf("profile store: %w", err)
	}
	for _, r := range store.LayerReports() {
		for _, name := range r.Unreachable {
			logger.WithFields(logger.Fields{"profile": r.Profile, "map": name}).Warn("Map cannot be reached from the default map")
		}
		for _, d := range r.Dangling {
			logger.WithFields(logger.Fields{"profile": r.Profile, "map": d.Map, "key": d.Key, "target": d.Target}).Warn("Binding targets a missing map")
		}
	}

	keyboard, err := openKeyboard(config)
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer keyboard.Close()

	device, closeDevice := openDevice(config)
	defer closeDevice()

	virtual, err := input.NewVirtualKeyboard(config.VirtualName)
	if err != nil {
		return fmt.Errorf("virtual keyboard: %w", err)
	}

	manager, err := binding.New(store, virtual, device,
		binding.WithMacroKeys(config.Device.MacroKeys),
		binding.WithLogger(logger.ForDevice(config.Device.Serial)))
	if err != nil {
		virtual.Close()
		return fmt.Errorf("binding manager: %w", err)
	}
	defer manager.Close()

	// Start RPC Server
	rpcServer := rpc.NewRpcServer(config.RpcBindAddress)
	version := fmt.Sprintf("%s - %s", shortHash(), vcsTime.Format(time.RFC3339))
	if err := rpcServer.Start(fmt.Sprintf("%s - %s", programName, programDescription), version, manager); err != nil {
		logger.WithError(err).Error("gRPC server not started")
	}
	defer rpcServer.Stop()

	// Start REST Server
	if config.RestBindAddress != "" {
		restServer := rest.StartRestServer(config.RestBindAddress, rest.NewRouter(rest.NewHandler(manager)), config.StaticAssetsPath)
		defer restServer.Stop()
	}

	// Initialize SSH Server
	if config.SshBindAddress != "" {
		sshsrv, err := tui.NewSshServer(config.SshBindAddress, config.SshHostKeyPath, manager)
		if err != nil {
			logger.Error(err)
		} else {
			defer tui.ShutdownSshServer(sshsrv)
		}
	}

	err = keyboard.Run(ctx, func(ev input.KeyEvent) {
		manager.Dispatch(ev.Code, ev.Edge)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("keyboard stopped: %w", err)
	}
	return nil
}

func main() {
	getBuildInfo()
	ctx, cancel := context.WithCancel(context.Background())
	go waitForTermination(cancel)
	config := initConfig()

	logger.WithFields(logger.Fields{"programName": programName, "vcsHash": vcsHash, "vcsTime": vcsTime, "vcsDirty": vcsDirty}).Info("Starting program")
	logger.Info(programDescription)

	err := run(ctx, config)
	cancel()
	if err != nil {
		logger.Fatal(err)
	}
}
