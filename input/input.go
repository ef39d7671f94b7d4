package input

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/holoplot/go-evdev"
	"golang.org/x/exp/slices"
	"leguru.net/keybindd/logger"
)

// Edge is the evdev key value: 0 release, 1 press, 2 autorepeat.
type Edge int32

const (
	Up   Edge = 0
	Down Edge = 1
	Hold Edge = 2
)

func (e Edge) String() string {
	switch e {
	case Up:
		return "up"
	case Down:
		return "down"
	case Hold:
		return "hold"
	}
	return "unknown"
}

type KeyEvent struct {
	Code int
	Edge Edge
}

// Keyboard reads key events from a physical evdev device.
type Keyboard struct {
	dev  *evdev.InputDevice
	path string
	name string
}

// FindKeyboard returns the path of the first device whose name contains match
// and which reports key events.
func FindKeyboard(match string) (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("listing devices: %w", err)
	}
	for _, p := range paths {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(match)) {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		hasKeys := slices.Contains(dev.CapableTypes(), evdev.EV_KEY)
		dev.Close()
		if hasKeys {
			return p.Path, nil
		}
	}
	return "", fmt.Errorf("no keyboard matching %q", match)
}

// OpenKeyboard opens and grabs the device so its events only reach this process.
func OpenKeyboard(path string) (*Keyboard, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}
	name, _ := dev.Name()
	if err := dev.Grab(); err != nil {
		dev.Close()
		return nil, fmt.Errorf("grab %s: %w", path, err)
	}
	logger.WithFields(logger.Fields{"path": path, "name": name}).Info("Keyboard opened")
	return &Keyboard{dev: dev, path: path, name: name}, nil
}

func (k *Keyboard) Name() string {
	return k.name
}

// Run forwards key events to handle until ctx is done or the device fails.
// Events are delivered one at a time from a single goroutine.
func (k *Keyboard) Run(ctx context.Context, handle func(KeyEvent)) error {
	events := make(chan KeyEvent)
	errc := make(chan error, 1)
	go func() {
		for {
			ev, err := k.dev.ReadOne()
			if err != nil {
				errc <- err
				return
			}
			if ev.Type != evdev.EV_KEY {
				continue
			}
			select {
			case events <- KeyEvent{Code: int(ev.Code), Edge: Edge(ev.Value)}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			return err
		case ev := <-events:
			handle(ev)
		}
	}
}

func (k *Keyboard) Close() error {
	k.dev.Ungrab()
	return k.dev.Close()
}

// VirtualKeyboard is the uinput device that receives remapped key events.
type VirtualKeyboard struct {
	mu     sync.Mutex
	dev    *evdev.InputDevice
	closed bool
}

const maxKeyCode = 0x2ff

func NewVirtualKeyboard(name string) (*VirtualKeyboard, error) {
	keys := make([]evdev.EvCode, 0, maxKeyCode)
	for code := evdev.EvCode(1); code < maxKeyCode; code++ {
		keys = append(keys, code)
	}
	dev, err := evdev.CreateDevice(name, evdev.InputID{BusType: 0x03, Vendor: 0x1532, Product: 0x0001, Version: 1},
		map[evdev.EvType][]evdev.EvCode{evdev.EV_KEY: keys})
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	logger.WithField("name", name).Info("Virtual keyboard created")
	return &VirtualKeyboard{dev: dev}, nil
}

var ErrClosed = errors.New("virtual keyboard closed")

// Inject writes one key event followed by a sync report.
func (v *VirtualKeyboard) Inject(code int, edge Edge) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if err := v.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.EvCode(code), Value: int32(edge)}); err != nil {
		return err
	}
	return v.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT})
}

// Close destroys the device. Closing twice is harmless.
func (v *VirtualKeyboard) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	return v.dev.Close()
}
