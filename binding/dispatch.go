package binding

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"leguru.net/keybindd/input"
	"leguru.net/keybindd/profile"
	"leguru.net/keybindd/utils"
)

// Dispatch handles one key event from the physical keyboard.
func (m *Manager) Dispatch(code int, edge input.Edge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatch(code, edge)
}

func (m *Manager) dispatch(code int, edge input.Edge) {
	log := m.log.WithFields(logrus.Fields{"code": code, "edge": edge})
	log.Trace("Key event")

	actions, bound, err := m.store.Actions(m.session.ProfileID, m.session.MapName, utils.FmtKeyCode(code))
	if err != nil {
		log.WithError(err).Error("Cannot resolve binding, passing key through")
		m.key(code, edge)
		return
	}

	if bound {
		if edge != input.Up {
			for _, a := range actions {
				m.execute(code, edge, a)
			}
			return
		}
		if m.isMacroKey(code) {
			return
		}
		for _, a := range actions {
			m.executeRelease(a)
		}
		return
	}

	if m.session.ShiftKey != nil && *m.session.ShiftKey == code {
		if edge == input.Up {
			m.leaveShift()
		}
		return
	}

	m.record(code, edge)
	m.key(code, edge)
}

func (m *Manager) isMacroKey(code int) bool {
	return slices.Contains(m.macroKeys, code)
}

// key injects one event and keeps the pressed set in step with it.
func (m *Manager) key(code int, edge input.Edge) {
	switch edge {
	case input.Down:
		m.pressed.Press(code)
	case input.Up:
		m.pressed.Release(code)
	}
	if m.keys == nil {
		return
	}
	if err := m.keys.Inject(code, edge); err != nil {
		m.log.WithFields(logrus.Fields{"code": code, "edge": edge, "err": err}).Error("Key injection failed")
	}
}

func (m *Manager) execute(code int, edge input.Edge, a profile.Action) {
	log := m.log.WithFields(logrus.Fields{"code": code, "type": a.Type, "value": a.Value})
	utils.ForceDebugEntry(log, switchesLayer(a.Type), "Executing action")

	switch a.Type {
	case profile.ActionExecute:
		m.shell.Run(a.Value)

	case profile.ActionKey:
		if target, ok := m.keyValue(a); ok {
			m.key(target, edge)
		}

	case profile.ActionRelease:
		if target, ok := m.keyValue(a); ok {
			m.key(target, input.Up)
		}

	case profile.ActionMap:
		if err := m.setCurrentMap(a.Value); err != nil {
			log.WithError(err).Error("Map action failed")
			return
		}
		m.session.ShiftKey = nil

	case profile.ActionShift:
		if err := m.setCurrentMap(a.Value); err != nil {
			log.WithError(err).Error("Shift action failed")
			return
		}
		shift := code
		m.session.ShiftKey = &shift

	case profile.ActionProfile:
		id, ok := m.store.FindByName(a.Value)
		if !ok {
			log.Warn("Profile action names an unknown profile")
			return
		}
		if err := m.setCurrentProfile(id); err != nil {
			log.WithError(err).Error("Profile action failed")
		}

	case profile.ActionSleep:
		m.sleepFor(a)

	default:
		log.Warn("Unknown action type")
	}
}

// switchesLayer reports action types whose effect is worth logging at info.
func switchesLayer(t profile.ActionType) bool {
	return t == profile.ActionMap || t == profile.ActionShift || t == profile.ActionProfile
}

// executeRelease runs the part of a binding that still applies on key up.
func (m *Manager) executeRelease(a profile.Action) {
	switch a.Type {
	case profile.ActionKey:
		if target, ok := m.keyValue(a); ok {
			m.key(target, input.Up)
		}
	case profile.ActionSleep:
		m.sleepFor(a)
	}
}

func (m *Manager) keyValue(a profile.Action) (int, bool) {
	code, err := strconv.Atoi(a.Value)
	if err != nil {
		m.log.WithFields(logrus.Fields{"type": a.Type, "value": a.Value}).Warn("Action value is not a key code")
		return 0, false
	}
	return code, true
}

func (m *Manager) sleepFor(a profile.Action) {
	seconds, err := strconv.Atoi(a.Value)
	if err != nil || seconds < 0 {
		m.log.WithField("value", a.Value).Warn("Sleep action value is not a number of seconds")
		return
	}
	m.sleep(time.Duration(seconds) * time.Second)
}

// leaveShift restores the map that was active before the shift key went down
// and releases every key still held, since their up events would otherwise be
// resolved against the wrong map.
func (m *Manager) leaveShift() {
	m.session.ShiftKey = nil
	if err := m.setCurrentMap(m.session.PreviousMap); err != nil {
		m.log.WithError(err).Error("Cannot restore map after shift")
	}
	for _, code := range m.pressed.Held() {
		m.key(code, input.Up)
	}
}
