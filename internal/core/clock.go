package core

import (
	"sync/atomic"
	"time"
)

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary fixed origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock whose origin is the moment of the call.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the monotonic time since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. Tests use it to get reproducible
// physics time deltas.
type ManualClock struct {
	now atomic.Int64
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return time.Duration(c.now.Load())
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now.Add(int64(d))
}

// Stopwatch accumulates running time over a Clock and can be paused, like
// a hardware timer that is stopped and restarted.
type Stopwatch struct {
	clock   Clock
	running bool
	since   time.Duration // clock reading at the last Start
	total   time.Duration // time accumulated before the last Start
}

// NewStopwatch returns a stopped stopwatch reading zero.
func NewStopwatch(clock Clock) *Stopwatch {
	return &Stopwatch{clock: clock}
}

// Start resumes accumulation. Starting a running stopwatch is a no-op.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.since = s.clock.Now()
	s.running = true
}

// Stop freezes the reading. Stopping a stopped stopwatch is a no-op.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.total += s.clock.Now() - s.since
	s.running = false
}

// Running reports whether the stopwatch is accumulating.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the accumulated running time.
func (s *Stopwatch) Elapsed() time.Duration {
	if !s.running {
		return s.total
	}
	return s.total + s.clock.Now() - s.since
}
