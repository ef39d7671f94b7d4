package chroma

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"leguru.net/keybindd/logger"
)

// Capability names advertised by keypads, matching the names of the operations
// they enable.
const (
	CapSetKeyRow       = "set_key_row"
	CapCustomEffect    = "set_custom_effect"
	CapMacroMode       = "keypad_set_macro_mode"
	CapMacroEffect     = "keypad_set_macro_effect"
	CapProfileLEDRed   = "keypad_set_profile_led_red"
	CapProfileLEDGreen = "keypad_set_profile_led_green"
	CapProfileLEDBlue  = "keypad_set_profile_led_blue"
)

type LEDChannel int

const (
	LEDRed LEDChannel = iota
	LEDGreen
	LEDBlue
)

func (c LEDChannel) String() string {
	switch c {
	case LEDRed:
		return "red"
	case LEDGreen:
		return "green"
	case LEDBlue:
		return "blue"
	}
	return "unknown"
}

// Capability returns the capability a device needs for this profile LED.
func (c LEDChannel) Capability() string {
	switch c {
	case LEDRed:
		return CapProfileLEDRed
	case LEDGreen:
		return CapProfileLEDGreen
	case LEDBlue:
		return CapProfileLEDBlue
	}
	return ""
}

func (c LEDChannel) led() uint8 {
	switch c {
	case LEDGreen:
		return GreenProfileLED
	case LEDBlue:
		return BlueProfileLED
	}
	return RedProfileLED
}

type DeviceInfo struct {
	Name         string
	Serial       string
	Rows         int
	Cols         int
	Capabilities []string
}

// Device is the keypad's LED and macro controller.
type Device struct {
	info DeviceInfo
	link Transport
}

// NewDevice binds the capability interface to a link. A nil link gives a device
// that advertises nothing.
func NewDevice(info DeviceInfo, link Transport) *Device {
	if link == nil {
		info.Capabilities = nil
	}
	return &Device{info: info, link: link}
}

func (d *Device) Info() DeviceInfo {
	return d.info
}

func (d *Device) MatrixDims() (int, int) {
	return d.info.Rows, d.info.Cols
}

func (d *Device) HasCapability(name string) bool {
	return slices.Contains(d.info.Capabilities, name)
}

var errNoLink = errors.New("device has no link")

func (d *Device) send(r Report) error {
	if d.link == nil {
		return errNoLink
	}
	packed, err := r.Pack()
	if err != nil {
		return err
	}
	reply, err := d.link.Exchange(packed)
	if err != nil {
		return fmt.Errorf("exchange %02X/%02X: %w", r.CommandClass, r.CommandID, err)
	}
	response, err := UnpackReport(reply)
	if err != nil {
		return fmt.Errorf("response %02X/%02X: %w", r.CommandClass, r.CommandID, err)
	}
	if err := response.Matches(r); err != nil {
		logger.WithFields(logger.Fields{"class": r.CommandClass, "cmd": r.CommandID, "status": response.Status}).Warn("Erroneous report")
		return err
	}
	return nil
}

// SetKeyRow uploads a flattened frame one row at a time.
func (d *Device) SetKeyRow(payload []byte) error {
	rows, err := SplitFrame(payload)
	for _, row := range rows {
		if err := d.send(CustomFrameRowReport(row.Row, row.StartCol, row.StopCol, row.RGB)); err != nil {
			return err
		}
	}
	return err
}

func (d *Device) SetCustom() error {
	return d.send(CustomFrameEffectReport())
}

func (d *Device) SetMacroEffect(effect uint8) error {
	return d.send(LEDEffectReport(VarStore, MacroLED, effect))
}

func (d *Device) SetMacroMode(on bool) error {
	return d.send(LEDStateReport(VarStore, MacroLED, on))
}

func (d *Device) SetProfileLED(channel LEDChannel, on bool) error {
	return d.send(LEDStateReport(VarStore, channel.led(), on))
}

func (d *Device) Close() error {
	if d.link == nil {
		return nil
	}
	return d.link.Close()
}

// ParseCapabilities splits a comma separated list, dropping blanks.
func ParseCapabilities(s string) []string {
	var caps []string
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(caps, c) {
			caps = append(caps, c)
		}
	}
	return caps
}
