package testutil

import (
	"sync"
	"time"
)

// FakeClock is a hand-driven clock. Runs derive their ID and record
// timestamps from an injected now func, so tests advance this instead
// of sleeping.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewFakeClock starts a clock frozen at the given instant.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start}
}

// Now returns the frozen instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc adapts the clock to the `func() time.Time` dependency slot.
func (c *FakeClock) NowFunc() func() time.Time {
	return c.Now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
