// Package binding turns physical key events into remapped output according to
// the profiles of one keypad.
//
// A Manager owns the runtime state of a single device: the active profile and
// map, the map that was active before the last switch, the shift modifier and
// the macro recorder. All of it is kept in a Session guarded by the Manager, so
// key dispatch and control calls for one device are serialised. A sleep action
// therefore delays both the next key events and pending control calls.
package binding

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"leguru.net/keybindd/chroma"
	"leguru.net/keybindd/input"
	"leguru.net/keybindd/logger"
	"leguru.net/keybindd/profile"
)

// DefaultMacroKeys are the macro-control codes of the keypad family this daemon
// was written for (KEY_F13 to KEY_F17 as reported by its macro row). Releases of
// these keys are not dispatched. Other device families may need a different set.
var DefaultMacroKeys = []int{183, 184, 185, 186, 187}

// Injector is the virtual input device.
type Injector interface {
	Inject(code int, edge input.Edge) error
	Close() error
}

// Device is the keypad's LED and macro controller.
type Device interface {
	HasCapability(name string) bool
	MatrixDims() (int, int)
	SetKeyRow(payload []byte) error
	SetCustom() error
	SetMacroEffect(effect uint8) error
	SetMacroMode(on bool) error
	SetProfileLED(channel chroma.LEDChannel, on bool) error
}

// ShellRunner starts execute actions.
type ShellRunner interface {
	Run(command string)
}

// Session is the runtime binding state of one device. It is never persisted.
type Session struct {
	ProfileID   profile.ID `json:"profile_id"`
	ProfileName string     `json:"profile"`
	MapName     string     `json:"map"`
	PreviousMap string     `json:"previous_map"`
	ShiftKey    *int       `json:"shift_key,omitempty"`
	MacroMode   bool       `json:"macro_mode"`
	MacroKey    *int       `json:"macro_key,omitempty"`
}

// Status is a snapshot of a Manager for monitoring.
type Status struct {
	Session
	Pressed []int                       `json:"pressed"`
	Binding map[string][]profile.Action `json:"binding"`
}

type Option func(*Manager)

func WithMacroKeys(codes []int) Option {
	return func(m *Manager) {
		if len(codes) > 0 {
			m.macroKeys = append([]int{}, codes...)
		}
	}
}

func WithShell(shell ShellRunner) Option {
	return func(m *Manager) {
		m.shell = shell
	}
}

func WithSleep(sleep func(time.Duration)) Option {
	return func(m *Manager) {
		m.sleep = sleep
	}
}

func WithLogger(entry *logrus.Entry) Option {
	return func(m *Manager) {
		m.log = entry
	}
}

type Manager struct {
	mu        sync.Mutex
	store     *profile.Store
	keys      Injector
	device    Device
	shell     ShellRunner
	sleep     func(time.Duration)
	macroKeys []int
	pressed   *PressedKeys
	session   Session
	log       *logrus.Entry
	closeOnce sync.Once
	closeErr  error
}

// New builds the manager and activates profile 0, or the first profile when 0
// was removed.
func New(store *profile.Store, keys Injector, device Device, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:     store,
		keys:      keys,
		device:    device,
		sleep:     time.Sleep,
		macroKeys: append([]int{}, DefaultMacroKeys...),
		pressed:   NewPressedKeys(),
		log:       logger.WithField("component", "binding"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.shell == nil {
		m.shell = NewShell(m.log)
	}

	ids := store.IDs()
	if len(ids) == 0 {
		return nil, profile.ErrProfileNotFound
	}
	if err := m.setCurrentProfile(ids[0]); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) Store() *profile.Store {
	return m.store
}

func (m *Manager) Pressed() *PressedKeys {
	return m.pressed
}

// Close releases the virtual keyboard. It is safe to call more than once and
// tolerates a device that is already closed.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		if m.keys == nil {
			return
		}
		err := m.keys.Close()
		if err != nil && !errors.Is(err, input.ErrClosed) {
			m.log.WithError(err).Error("Error closing virtual keyboard")
			m.closeErr = err
		}
	})
	return m.closeErr
}

func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copySession()
}

func (m *Manager) copySession() Session {
	s := m.session
	s.ShiftKey = copyInt(s.ShiftKey)
	s.MacroKey = copyInt(s.MacroKey)
	return s
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{Session: m.copySession(), Pressed: m.pressed.Held()}
	if mp, err := m.store.Map(m.session.ProfileID, m.session.MapName); err == nil {
		st.Binding = mp.Binding
	}
	return st
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
