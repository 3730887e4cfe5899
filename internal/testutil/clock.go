package testutil

import (
	"sync"
	"time"
)

// DeterministicClock provides a thread-safe ticking wall clock for tests.
//
// Each call to Now advances the clock by a fixed step, so bid timestamps
// are strictly increasing and test runs produce identical orderings.
type DeterministicClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewDeterministicClock creates a clock starting at a fixed epoch,
// advancing one second per call to Now.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{
		now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

// Now returns the current time and advances the clock by one step.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Advance moves the clock forward without returning a reading.
func (c *DeterministicClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
