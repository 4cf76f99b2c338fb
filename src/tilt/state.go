// Package tilt turns noisy accelerometer readings into a debounced position
// on a short LED strip.
package tilt

import "math"

const (
	// Positions is the number of discrete positions, one per strip pixel.
	Positions = 5
	// Middle is the starting position.
	Middle = 2

	DefaultDeadzone = 2.0
	DefaultFriction = 2
)

// State is a hysteresis position tracker. A reading must exceed the deadzone
// in the same direction more than friction times before the position moves
// one step. It is not safe for concurrent use.
type State struct {
	deadzone float64
	friction int
	pos      int
	hue      uint8
	count    int8
}

// New returns a State at the middle position.
func New(deadzone float64, friction int) *State {
	return &State{
		deadzone: deadzone,
		friction: friction,
		pos:      Middle,
	}
}

// Update feeds one reading and returns the position and the animation hue.
//
// Readings inside the deadzone leave the count untouched. A move blocked by
// either end of the strip keeps the count, so a long push against an end has
// to be unwound before the position can move back. The count saturates at
// ±127 instead of wrapping.
func (s *State) Update(value float64) (pos int, hue uint8) {
	switch {
	case value > s.deadzone:
		if s.count < math.MaxInt8 {
			s.count++
		}
	case value < -s.deadzone:
		if s.count > -math.MaxInt8 {
			s.count--
		}
	}

	if abs(int(s.count)) > s.friction {
		if s.count < 0 {
			if s.pos > 0 {
				s.pos--
				s.count = 0
			}
		} else if s.pos < Positions-1 {
			s.pos++
			s.count = 0
		}
	}

	s.hue++
	return s.pos, s.hue
}

// Reset moves back to the middle and clears the count and hue.
func (s *State) Reset() {
	s.pos = Middle
	s.count = 0
	s.hue = 0
}

func (s *State) Pos() int          { return s.pos }
func (s *State) Hue() uint8        { return s.hue }
func (s *State) Count() int        { return int(s.count) }
func (s *State) Deadzone() float64 { return s.deadzone }
func (s *State) Friction() int     { return s.friction }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
