package binding

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"leguru.net/keybindd/chroma"
	"leguru.net/keybindd/profile"
)

// SetCurrentMap activates a map of the current profile.
func (m *Manager) SetCurrentMap(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCurrentMap(name)
}

// SetCurrentProfile activates a profile and its default map. The shift
// modifier is dropped.
func (m *Manager) SetCurrentProfile(id profile.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCurrentProfile(id)
}

func (m *Manager) setCurrentMap(name string) error {
	mp, err := m.store.Map(m.session.ProfileID, name)
	if err != nil {
		return err
	}
	m.session.PreviousMap = m.session.MapName
	m.session.MapName = name
	m.log.WithFields(logrus.Fields{"profile": m.session.ProfileName, "map": name}).Info("Map activated")
	m.applyMap(&mp)
	return nil
}

func (m *Manager) setCurrentProfile(id profile.ID) error {
	info, err := m.store.Info(id)
	if err != nil {
		return err
	}
	mp, err := m.store.Map(id, info.DefaultMap)
	if err != nil {
		return fmt.Errorf("profile %s default map: %w", info.Name, err)
	}
	m.session.ProfileID = id
	m.session.ProfileName = info.Name
	m.session.ShiftKey = nil
	m.session.PreviousMap = ""
	m.session.MapName = info.DefaultMap
	m.log.WithFields(logrus.Fields{"profile": info.Name, "id": id, "map": info.DefaultMap}).Info("Profile activated")
	m.applyMap(&mp)
	return nil
}

// applyMap pushes the map's matrix and profile LEDs to the device. Device
// errors are logged; the map stays active either way.
func (m *Manager) applyMap(mp *profile.Map) {
	if m.device == nil {
		return
	}
	if mp.IsUsingMatrix {
		if err := m.pushMatrix(mp.Matrix); err != nil {
			m.log.WithError(err).Error("Matrix push failed")
		}
	}
	red, green, blue := mp.RedLED, mp.GreenLED, mp.BlueLED
	for _, led := range []struct {
		channel chroma.LEDChannel
		value   *bool
	}{
		{chroma.LEDRed, red},
		{chroma.LEDGreen, green},
		{chroma.LEDBlue, blue},
	} {
		if led.value == nil || !m.device.HasCapability(led.channel.Capability()) {
			continue
		}
		if err := m.device.SetProfileLED(led.channel, *led.value); err != nil {
			m.log.WithFields(logrus.Fields{"led": led.channel, "err": err}).Error("Profile LED update failed")
		}
	}
}

func (m *Manager) pushMatrix(matrix profile.Matrix) error {
	if !m.device.HasCapability(chroma.CapSetKeyRow) || !m.device.HasCapability(chroma.CapCustomEffect) {
		return nil
	}
	frame, skipped, err := RenderMatrix(matrix, m.device.MatrixDims)
	if err != nil {
		return err
	}
	if skipped > 0 {
		m.log.WithField("skipped", skipped).Warn("Matrix cells outside the device were not drawn")
	}
	if err := m.device.SetKeyRow(frame.Binary()); err != nil {
		return err
	}
	return m.device.SetCustom()
}

// RenderMatrix lays a stored matrix onto a frame of the device dimensions.
// Keys missing from the matrix stay dark. Cells outside the frame are left out
// and counted.
func RenderMatrix(matrix profile.Matrix, dims func() (int, int)) (*chroma.Frame, int, error) {
	if err := matrix.Validate(); err != nil {
		return nil, 0, err
	}
	rows, cols := dims()
	frame := chroma.NewFrame(rows, cols)
	skipped := 0
	for rowKey, columns := range matrix {
		row, _ := strconv.Atoi(rowKey)
		for colKey, rgb := range columns {
			col, _ := strconv.Atoi(colKey)
			if err := frame.SetKeyColour(row, col, rgb); err != nil {
				skipped++
			}
		}
	}
	return frame, skipped, nil
}
