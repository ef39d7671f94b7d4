package chroma

import (
	"errors"
	"fmt"
)

// Frame is the colour grid of the keypad LED matrix.
type Frame struct {
	rows   int
	cols   int
	colors [][][3]byte
}

func NewFrame(rows int, cols int) *Frame {
	f := &Frame{rows: rows, cols: cols, colors: make([][][3]byte, rows)}
	for i := range f.colors {
		f.colors[i] = make([][3]byte, cols)
	}
	return f
}

func (f *Frame) Dims() (int, int) {
	return f.rows, f.cols
}

func (f *Frame) SetKeyColour(row int, col int, rgb [3]byte) error {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return fmt.Errorf("key %d,%d outside %dx%d matrix", row, col, f.rows, f.cols)
	}
	f.colors[row][col] = rgb
	return nil
}

func (f *Frame) KeyColour(row int, col int) [3]byte {
	return f.colors[row][col]
}

func (f *Frame) Reset() {
	for _, row := range f.colors {
		clear(row)
	}
}

// Binary flattens the frame as consecutive ROW_ID, START_COL, STOP_COL, N*RGB chunks.
func (f *Frame) Binary() []byte {
	out := make([]byte, 0, f.rows*(3+3*f.cols))
	for i, row := range f.colors {
		out = append(out, byte(i), 0x00, byte(f.cols-1))
		for _, rgb := range row {
			out = append(out, rgb[:]...)
		}
	}
	return out
}

// FrameRow is one chunk of a flattened frame.
type FrameRow struct {
	Row      uint8
	StartCol uint8
	StopCol  uint8
	RGB      []byte
}

// SplitFrame parses a flattened frame back into rows.
func SplitFrame(payload []byte) ([]FrameRow, error) {
	var rows []FrameRow
	offset := 0
	for offset < len(payload) {
		if offset+3 > len(payload) {
			return rows, errors.New("wrong amount of data: should be ROW_ID, START_COL, STOP_COL, N_RGB")
		}
		r := FrameRow{Row: payload[offset], StartCol: payload[offset+1], StopCol: payload[offset+2]}
		offset += 3
		if r.StartCol > r.StopCol {
			return rows, errors.New("start column is greater than end column")
		}
		n := (int(r.StopCol) + 1 - int(r.StartCol)) * 3
		if offset+n > len(payload) {
			return rows, errors.New("not enough RGB to fill row")
		}
		r.RGB = payload[offset : offset+n]
		offset += n
		rows = append(rows, r)
	}
	return rows, nil
}
