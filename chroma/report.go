package chroma

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-restruct/restruct"
)

const ReportSize = 90

const (
	StatusNew          uint8 = 0x00
	StatusBusy         uint8 = 0x01
	StatusSuccessful   uint8 = 0x02
	StatusFailure      uint8 = 0x03
	StatusTimeout      uint8 = 0x04
	StatusNotSupported uint8 = 0x05
)

const (
	NoStore  uint8 = 0x00
	VarStore uint8 = 0x01
)

const (
	ZeroLED         uint8 = 0x00
	MacroLED        uint8 = 0x07
	RedProfileLED   uint8 = 0x0C
	GreenProfileLED uint8 = 0x0D
	BlueProfileLED  uint8 = 0x0E
)

const (
	EffectStatic   uint8 = 0x00
	EffectBlinking uint8 = 0x01
	effectCustom   uint8 = 0x08
)

const (
	standardClass uint8 = 0x03
	extendedClass uint8 = 0x0F

	setLEDStateCmd    uint8 = 0x00
	setLEDEffectCmd   uint8 = 0x02
	matrixEffectCmd   uint8 = 0x02
	matrixSetFrameCmd uint8 = 0x03
)

const defaultTransactionID uint8 = 0xFF
const frameTransactionID uint8 = 0x1F

// Report is the fixed-size command block exchanged with the keypad.
type Report struct {
	Status           uint8  `struct:"uint8"`
	TransactionID    uint8  `struct:"uint8"`
	RemainingPackets uint16 `struct:"uint16"`
	ProtocolType     uint8  `struct:"uint8"`
	DataSize         uint8  `struct:"uint8"`
	CommandClass     uint8  `struct:"uint8"`
	CommandID        uint8  `struct:"uint8"`
	Arguments        [80]byte
	CRC              uint8 `struct:"uint8"`
	Reserved         uint8 `struct:"uint8"`
}

func newReport(class uint8, id uint8, size uint8) Report {
	return Report{
		Status:        StatusNew,
		TransactionID: defaultTransactionID,
		DataSize:      size,
		CommandClass:  class,
		CommandID:     id,
	}
}

// Checksum is the xor of bytes 2 to 87 of the packed report.
func Checksum(packed []byte) uint8 {
	var crc uint8
	for i := 2; i < 88 && i < len(packed); i++ {
		crc ^= packed[i]
	}
	return crc
}

// Pack serialises the report and fills in its checksum.
func (r *Report) Pack() ([]byte, error) {
	r.CRC = 0
	b, err := restruct.Pack(binary.BigEndian, r)
	if err != nil {
		return nil, err
	}
	if len(b) != ReportSize {
		return nil, fmt.Errorf("packed report is %d bytes, want %d", len(b), ReportSize)
	}
	r.CRC = Checksum(b)
	b[88] = r.CRC
	return b, nil
}

func UnpackReport(data []byte) (Report, error) {
	var r Report
	if len(data) != ReportSize {
		return r, fmt.Errorf("invalid report length %d", len(data))
	}
	if err := restruct.Unpack(data, binary.BigEndian, &r); err != nil {
		return r, err
	}
	if Checksum(data) != r.CRC {
		return r, errors.New("report checksum mismatch")
	}
	return r, nil
}

// Matches tells whether a response answers the request.
func (r Report) Matches(request Report) error {
	if r.RemainingPackets != request.RemainingPackets || r.CommandClass != request.CommandClass || r.CommandID != request.CommandID {
		return errors.New("response doesn't match request")
	}
	switch r.Status {
	case StatusFailure:
		return errors.New("command failed")
	case StatusNotSupported:
		return errors.New("command not supported")
	case StatusTimeout:
		return errors.New("command timed out")
	}
	return nil
}

// CustomFrameRowReport loads one row of colours into the keypad frame buffer.
func CustomFrameRowReport(row uint8, startCol uint8, stopCol uint8, rgb []byte) Report {
	r := newReport(extendedClass, matrixSetFrameCmd, 0x47)
	r.TransactionID = frameTransactionID
	r.Arguments[2] = row
	r.Arguments[3] = startCol
	r.Arguments[4] = stopCol
	copy(r.Arguments[5:], rgb)
	return r
}

// CustomFrameEffectReport switches the lighting to whatever is in the frame buffer.
func CustomFrameEffectReport() Report {
	r := newReport(extendedClass, matrixEffectCmd, 0x0C)
	r.Arguments[0] = NoStore
	r.Arguments[1] = ZeroLED
	r.Arguments[2] = effectCustom
	return r
}

func LEDStateReport(store uint8, led uint8, on bool) Report {
	r := newReport(standardClass, setLEDStateCmd, 0x03)
	r.Arguments[0] = store
	r.Arguments[1] = led
	if on {
		r.Arguments[2] = 0x01
	}
	return r
}

func LEDEffectReport(store uint8, led uint8, effect uint8) Report {
	r := newReport(standardClass, setLEDEffectCmd, 0x03)
	r.Arguments[0] = store
	r.Arguments[1] = led
	r.Arguments[2] = effect
	return r
}
