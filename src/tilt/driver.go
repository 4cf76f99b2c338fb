package tilt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"badgelife/src/pkg"
	"badgelife/src/sample"
)

// Sink receives the strip state after every update.
type Sink func(pos int, hue uint8) error

// Driver is the sampling loop: it owns State and feeds it one axis of every
// reading from Source.
type Driver struct {
	Source sample.Source
	State  *State
	Axis   sample.Axis
	Sink   Sink
}

// Run loops until the source is exhausted, which returns nil, or ctx is
// done. An error from the source or the sink stops the loop.
func (d *Driver) Run(ctx context.Context) error {
	if d.State == nil {
		d.State = New(DefaultDeadzone, DefaultFriction)
	}
	pkg.LogInfo(pkg.ComponentTilt, "driver started",
		"axis", d.Axis, "deadzone", d.State.Deadzone(), "friction", d.State.Friction())
	n := 0
	last := d.State.Pos()
	for {
		s, err := d.Source.Next(ctx)
		if errors.Is(err, io.EOF) {
			pkg.LogInfo(pkg.ComponentTilt, "source exhausted", "samples", n)
			return nil
		}
		if err != nil {
			return fmt.Errorf("tilt: sample %d: %w", n+1, err)
		}
		n++
		pos, hue := d.State.Update(d.Axis.Value(s))
		if pos != last {
			pkg.LogDebug(pkg.ComponentTilt, "moved", "from", last, "to", pos, "sample", n)
			last = pos
		}
		if d.Sink != nil {
			if err := d.Sink(pos, hue); err != nil {
				return fmt.Errorf("tilt: sink: %w", err)
			}
		}
	}
}
