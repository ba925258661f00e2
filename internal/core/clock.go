package core

import "time"

// MaxDTScale caps the per-tick time compensation so that a stalled frame
// cannot launch the simulation through platforms.
const MaxDTScale = 2.0

// FrameClock converts host tick timestamps into dtScale values: the elapsed
// time since the previous tick divided by the nominal tick duration.
type FrameClock struct {
	nominal time.Duration
	last    time.Time
	started bool
}

// NewFrameClock creates a clock for the given tick rate (ticks per second).
func NewFrameClock(tickRate int) *FrameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &FrameClock{nominal: time.Second / time.Duration(tickRate)}
}

// Tick records a timestamp and returns the dtScale for the frame that just ended.
// The first tick after construction or Reset is nominal (1.0). Timestamps that go
// backwards also yield 1.0.
func (c *FrameClock) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 1.0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed <= 0 {
		return 1.0
	}
	return ClampF(float64(elapsed)/float64(c.nominal), 0, MaxDTScale)
}

// Reset forgets the previous timestamp, e.g. after a pause.
func (c *FrameClock) Reset() {
	c.started = false
}

// Nominal returns the nominal tick duration.
func (c *FrameClock) Nominal() time.Duration {
	return c.nominal
}
