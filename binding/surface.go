package binding

import (
	"github.com/sirupsen/logrus"
	"leguru.net/keybindd/profile"
	"leguru.net/keybindd/utils"
)

// The methods below are the configuration surface shared by the gRPC and REST
// front ends. Each mutation is persisted before it returns.

func (m *Manager) ListProfiles() []profile.ProfileInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.store.IDs()
	out := make([]profile.ProfileInfo, 0, len(ids))
	for _, id := range ids {
		if info, err := m.store.Info(id); err == nil {
			out = append(out, info)
		}
	}
	return out
}

func (m *Manager) ActiveProfile() profile.ProfileInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, err := m.store.Info(m.session.ProfileID)
	if err != nil {
		return profile.ProfileInfo{ID: m.session.ProfileID, Name: m.session.ProfileName}
	}
	return info
}

func (m *Manager) SetActiveProfile(id profile.ID) error {
	return m.SetCurrentProfile(id)
}

func (m *Manager) AddProfile(name string, defaultMap string) (profile.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, err := m.store.AddProfile(name, defaultMap)
	if err != nil {
		return 0, err
	}
	m.log.WithFields(logrus.Fields{"id": id, "name": name}).Info("Profile added")
	return id, nil
}

func (m *Manager) RemoveProfile(id profile.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == m.session.ProfileID {
		return profile.ErrProfileInUse
	}
	if err := m.store.RemoveProfile(id); err != nil {
		return err
	}
	m.log.WithField("id", id).Info("Profile removed")
	return nil
}

func (m *Manager) ListMaps(id profile.ID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.MapNames(id)
}

func (m *Manager) GetMap(id profile.ID, name string) (profile.Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Map(id, name)
}

func (m *Manager) AddMap(id profile.ID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.AddMap(id, name)
}

func (m *Manager) ActiveMap() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.MapName
}

// SetActiveMap switches the map of the current profile on request of a
// control client. Any shift modifier is dropped.
func (m *Manager) SetActiveMap(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.setCurrentMap(name); err != nil {
		return err
	}
	m.session.ShiftKey = nil
	return nil
}

func (m *Manager) GetActions(id profile.ID, mapName string, key int) ([]profile.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions, _, err := m.store.Actions(id, mapName, utils.FmtKeyCode(key))
	return actions, err
}

// AddAction appends an action to a key and returns its position.
func (m *Manager) AddAction(id profile.ID, mapName string, key int, action profile.Action) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.AddAction(id, mapName, utils.FmtKeyCode(key), action)
}

func (m *Manager) UpdateAction(id profile.ID, mapName string, key int, actionID int, action profile.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.UpdateAction(id, mapName, utils.FmtKeyCode(key), actionID, action)
}

func (m *Manager) RemoveAction(id profile.ID, mapName string, key int, actionID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.RemoveAction(id, mapName, utils.FmtKeyCode(key), actionID)
}

func (m *Manager) ClearActions(id profile.ID, mapName string, key int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.ClearActions(id, mapName, utils.FmtKeyCode(key))
}

// LEDs is the profile LED triple of a map.
type LEDs struct {
	Red   bool `json:"red"`
	Green bool `json:"green"`
	Blue  bool `json:"blue"`
}

func (m *Manager) GetProfileLEDs(id profile.ID, mapName string) (LEDs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, g, b, err := m.store.ProfileLEDs(id, mapName)
	return LEDs{Red: r, Green: g, Blue: b}, err
}

func (m *Manager) SetProfileLEDs(id profile.ID, mapName string, leds LEDs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SetProfileLEDs(id, mapName, leds.Red, leds.Green, leds.Blue); err != nil {
		return err
	}
	m.refresh(id, mapName)
	return nil
}

func (m *Manager) GetMatrix(id profile.ID, mapName string) (profile.Matrix, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Matrix(id, mapName)
}

// SetMatrix stores a colour matrix and enables it for the map. With a device
// attached every cell must fit its matrix.
func (m *Manager) SetMatrix(id profile.ID, mapName string, matrix profile.Matrix) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := matrix.Validate(); err != nil {
		return err
	}
	if m.device != nil {
		if err := matrix.CheckBounds(m.device.MatrixDims()); err != nil {
			return err
		}
	}
	if err := m.store.SetMatrix(id, mapName, matrix); err != nil {
		return err
	}
	m.refresh(id, mapName)
	return nil
}

func (m *Manager) LayerReports() []profile.LayerReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.LayerReports()
}

// refresh pushes the device state again when the edited map is on display.
func (m *Manager) refresh(id profile.ID, mapName string) {
	if id != m.session.ProfileID || mapName != m.session.MapName {
		return
	}
	mp, err := m.store.Map(id, mapName)
	if err != nil {
		return
	}
	m.applyMap(&mp)
}

func (m *Manager) Profile(id profile.ID) (profile.ProfileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Info(id)
}
