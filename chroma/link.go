package chroma

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
	"leguru.net/keybindd/logger"
	"leguru.net/keybindd/utils"
)

const startFrame byte = 0xFE
const escapeFrame byte = 0xEA
const stopFrame byte = 0xEF

const maxFrameLen = 2 * ReportSize

const defaultReplyTimeout = 500 * time.Millisecond

// Transport carries one report and returns the keypad's answer.
type Transport interface {
	Exchange(request []byte) ([]byte, error)
	Close() error
}

// Escape wraps payload between start and stop bytes, escaping reserved bytes.
func Escape(payload []byte) []byte {
	out := []byte{startFrame}
	for _, b := range payload {
		if b == stopFrame || b == startFrame || b == escapeFrame {
			out = append(out, escapeFrame)
		}
		out = append(out, b)
	}
	return append(out, stopFrame)
}

const (
	waitStartByte = iota
	escapeNextByte
	waitEndByte
)

// frameDecoder rebuilds frames from a byte stream.
type frameDecoder struct {
	state  int
	buffer []byte
}

// feed consumes one byte and returns a complete payload when a stop byte ends a frame.
func (d *frameDecoder) feed(b byte) []byte {
	switch d.state {
	case waitStartByte:
		if b == startFrame {
			d.buffer = d.buffer[:0]
			d.state = waitEndByte
		}
	case escapeNextByte:
		d.state = waitEndByte
		d.buffer = append(d.buffer, b)
	default:
		switch b {
		case stopFrame:
			d.state = waitStartByte
			out := make([]byte, len(d.buffer))
			copy(out, d.buffer)
			return out
		case escapeFrame:
			d.state = escapeNextByte
		default:
			d.buffer = append(d.buffer, b)
		}
	}
	if len(d.buffer) > maxFrameLen {
		logger.WithField("buffer", utils.EncodeToHexEllipsis(d.buffer, 16)).Error("Buffer overflow")
		d.state = waitStartByte
		d.buffer = d.buffer[:0]
	}
	return nil
}

// SerialLink talks to the keypad controller through a serial bridge. One
// exchange is in flight at a time.
type SerialLink struct {
	mu      sync.Mutex
	port    io.ReadWriteCloser
	timeout time.Duration
	decoder frameDecoder
	closed  bool
}

func OpenSerialLink(portName string, baudRate int) (*SerialLink, error) {
	mode := &serial.Mode{BaudRate: baudRate}
	p, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}
	if err := p.SetReadTimeout(50 * time.Millisecond); err != nil {
		p.Close()
		return nil, err
	}
	p.ResetInputBuffer()
	logger.WithFields(logger.Fields{"port": portName, "baud": baudRate}).Info("Device link opened")
	return NewSerialLink(p), nil
}

// NewSerialLink wraps an already open port. The port's reads must time out so
// that a missing reply is detected.
func NewSerialLink(port io.ReadWriteCloser) *SerialLink {
	return &SerialLink{port: port, timeout: defaultReplyTimeout}
}

func (l *SerialLink) SetTimeout(timeout time.Duration) {
	l.timeout = timeout
}

func (l *SerialLink) Exchange(request []byte) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, errors.New("device link closed")
	}

	b := Escape(request)
	if logger.IsTrace() {
		logger.Log().WithFields(logrus.Fields{"len": len(b), "data": utils.EncodeToHexEllipsis(b, 10)}).Trace("To device")
	}
	n, err := l.port.Write(b)
	if err != nil {
		return nil, err
	}
	if n < len(b) {
		return nil, errors.New("write to device link incomplete")
	}

	deadline := time.Now().Add(l.timeout)
	buffer := make([]byte, 1)
	for time.Now().Before(deadline) {
		n, err := l.port.Read(buffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if n == 0 {
			if err != nil {
				time.Sleep(time.Millisecond)
			}
			continue
		}
		if frame := l.decoder.feed(buffer[0]); frame != nil {
			if logger.IsTrace() {
				logger.Log().WithFields(logrus.Fields{"len": len(frame), "data": utils.EncodeToHexEllipsis(frame, 10)}).Trace("From device")
			}
			return frame, nil
		}
	}
	return nil, errors.New("reply timeout")
}

func (l *SerialLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.port.Close()
}
