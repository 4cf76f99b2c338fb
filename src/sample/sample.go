// Package sample provides accelerometer readings for the tilt demo: parsed
// from text streams, read from a board over a serial port, or synthesised.
package sample

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned for a line that isn't one or three numbers.
var ErrMalformed = errors.New("malformed sample")

// Sample is a normalized acceleration in g.
type Sample struct {
	X, Y, Z float64
}

// Axis selects one component of a Sample.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "unknown"
}

// Value returns the component of s selected by a.
func (a Axis) Value(s Sample) float64 {
	switch a {
	case AxisY:
		return s.Y
	case AxisZ:
		return s.Z
	}
	return s.X
}

// Source yields one sample per call once the reading is ready. It returns
// io.EOF when no more samples will come.
type Source interface {
	Next(ctx context.Context) (Sample, error)
}

// Reader parses samples from text, one per line: either a single value,
// taken as X, or "x y z" separated by spaces or commas. Blank lines and lines
// starting with '#' are skipped.
type Reader struct {
	s    *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// Next returns the next sample. The context is checked between lines only,
// a blocked read is not interrupted.
func (r *Reader) Next(ctx context.Context) (Sample, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Sample{}, err
		}
		if !r.s.Scan() {
			if err := r.s.Err(); err != nil {
				return Sample{}, fmt.Errorf("sample: line %d: %w", r.line+1, err)
			}
			return Sample{}, io.EOF
		}
		r.line++
		text := strings.TrimSpace(r.s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		s, err := parseLine(text)
		if err != nil {
			return Sample{}, fmt.Errorf("sample: line %d: %w", r.line, err)
		}
		return s, nil
	}
}

func parseLine(text string) (Sample, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 1 && len(fields) != 3 {
		return Sample{}, fmt.Errorf("%w: %d fields in %q", ErrMalformed, len(fields), text)
	}
	var v [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Sample{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		v[i] = x
	}
	return Sample{X: v[0], Y: v[1], Z: v[2]}, nil
}
