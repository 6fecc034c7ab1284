package viz

import "time"

// Clock is the process-wide monotonic time source driving every oscillator
// (idle wobble, scan sweep, ring spin, particle physics). It advances
// independently of the audio playback clock.
type Clock struct {
	now   func() float64
	start time.Time
}

// NewClock returns a wall-backed monotonic clock starting near zero.
func NewClock() *Clock {
	c := &Clock{start: time.Now()}
	c.now = func() float64 { return time.Since(c.start).Seconds() }
	return c
}

// NewManualClock returns a clock whose time is driven by the given function.
// Tests use this to step time deterministically.
func NewManualClock(now func() float64) *Clock {
	return &Clock{now: now}
}

// Now returns seconds since the clock started. The engine captures this once
// per frame tick so all per-point math within a frame observes one instant.
func (c *Clock) Now() float64 { return c.now() }
