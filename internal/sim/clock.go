package sim

import (
	"sync"
	"time"
)

// DefaultMaxDelta caps a single tick so a stalled frame cannot tunnel mobs
// through the player.
const DefaultMaxDelta = 50 * time.Millisecond

// Clock converts wall-clock readings into clamped tick deltas.
// It is safe for concurrent use.
//
// Invariant: every delta returned by Advance lies in [0, maxDelta] seconds.
type Clock struct {
	mu       sync.Mutex
	last     time.Time
	maxDelta time.Duration
}

// NewClock returns a Clock whose first delta is measured from start.
//
// Precondition: maxDelta > 0.
func NewClock(start time.Time, maxDelta time.Duration) *Clock {
	if maxDelta <= 0 {
		panic("sim.NewClock: maxDelta must be > 0")
	}
	return &Clock{last: start, maxDelta: maxDelta}
}

// Advance records now and returns the seconds elapsed since the previous
// reading, clamped to [0, maxDelta]. A reading earlier than the previous one
// yields 0.
func (c *Clock) Advance(now time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		return 0
	}
	if elapsed > c.maxDelta {
		elapsed = c.maxDelta
	}
	return elapsed.Seconds()
}

// MaxDelta returns the per-tick cap.
func (c *Clock) MaxDelta() time.Duration {
	return c.maxDelta
}
