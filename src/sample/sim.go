package sample

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"time"
)

// Sim synthesises a badge being tilted slowly left and right: a sine sweep
// on X with seeded noise, gravity on Z. The zero Interval produces samples
// without waiting.
type Sim struct {
	// Interval between readings, the accelerometer data rate.
	Interval time.Duration
	// Amplitude of the sweep in g.
	Amplitude float64
	// Period of one full sweep in samples.
	Period int
	// Noise is the largest random offset added to each axis.
	Noise float64
	// Limit stops the stream after that many samples, 0 never stops.
	Limit int

	rng  *rand.Rand
	n    int
	last time.Time
}

// NewSim returns a deterministic simulation for the seed.
func NewSim(seed uint64, interval time.Duration) *Sim {
	return &Sim{
		Interval:  interval,
		Amplitude: 4,
		Period:    100,
		Noise:     0.5,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *Sim) Next(ctx context.Context) (Sample, error) {
	if s.Limit > 0 && s.n >= s.Limit {
		return Sample{}, io.EOF
	}
	if s.Interval > 0 && !s.last.IsZero() {
		wait := time.Until(s.last.Add(s.Interval))
		if wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return Sample{}, ctx.Err()
			case <-t.C:
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	s.last = time.Now()

	period := s.Period
	if period <= 0 {
		period = 1
	}
	phase := 2 * math.Pi * float64(s.n%period) / float64(period)
	s.n++
	return Sample{
		X: s.Amplitude*math.Sin(phase) + s.noise(),
		Y: s.noise(),
		Z: 1 + s.noise(),
	}, nil
}

func (s *Sim) noise() float64 {
	if s.Noise == 0 || s.rng == nil {
		return 0
	}
	return (s.rng.Float64()*2 - 1) * s.Noise
}
