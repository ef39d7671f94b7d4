package binding

import (
	"github.com/sirupsen/logrus"
	"leguru.net/keybindd/chroma"
	"leguru.net/keybindd/input"
	"leguru.net/keybindd/profile"
	"leguru.net/keybindd/utils"
)

func (m *Manager) MacroMode() (bool, *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.MacroMode, copyInt(m.session.MacroKey)
}

// SetMacroMode starts or stops macro recording. Stopping forgets the macro key.
func (m *Manager) SetMacroMode(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if on {
		m.macroEffect(chroma.EffectBlinking)
		m.macroLED(true)
	} else {
		m.session.MacroKey = nil
		m.macroLED(false)
	}
	m.session.MacroMode = on
	m.log.WithField("on", on).Info("Macro mode changed")
	return nil
}

// SetMacroKey selects the key that receives recorded actions. Its existing
// actions in the active map are cleared. A nil key only forgets the selection.
func (m *Manager) SetMacroKey(code *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if code == nil {
		m.session.MacroKey = nil
		return nil
	}
	m.macroEffect(chroma.EffectStatic)
	key := utils.FmtKeyCode(*code)
	_, bound, err := m.store.Actions(m.session.ProfileID, m.session.MapName, key)
	if err != nil {
		return err
	}
	// An unbound key stays unbound until something is recorded into it.
	if bound {
		if err := m.store.ClearActions(m.session.ProfileID, m.session.MapName, key); err != nil {
			return err
		}
	}
	m.session.MacroKey = copyInt(code)
	m.log.WithField("key", *code).Info("Macro key selected")
	return nil
}

// record appends a passthrough key press to the macro key while recording.
func (m *Manager) record(code int, edge input.Edge) {
	if !m.session.MacroMode || m.session.MacroKey == nil || edge != input.Down {
		return
	}
	target := *m.session.MacroKey
	if code == target || m.isMacroKey(code) {
		return
	}
	action := profile.Action{Type: profile.ActionKey, Value: utils.FmtKeyCode(code)}
	if _, err := m.store.AddAction(m.session.ProfileID, m.session.MapName, utils.FmtKeyCode(target), action); err != nil {
		m.log.WithFields(logrus.Fields{"key": target, "code": code, "err": err}).Error("Cannot record macro action")
	}
}

func (m *Manager) macroEffect(effect uint8) {
	if m.device == nil || !m.device.HasCapability(chroma.CapMacroEffect) {
		return
	}
	if err := m.device.SetMacroEffect(effect); err != nil {
		m.log.WithError(err).Error("Macro effect update failed")
	}
}

func (m *Manager) macroLED(on bool) {
	if m.device == nil || !m.device.HasCapability(chroma.CapMacroMode) {
		return
	}
	if err := m.device.SetMacroMode(on); err != nil {
		m.log.WithError(err).Error("Macro mode update failed")
	}
}
