package hand

import (
	"sync"
	"time"
)

// RealClock sleeps on the wall clock.
type RealClock struct {
	start time.Time
}

// NewRealClock starts a wall clock.
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

// Now returns the time elapsed since the clock started.
func (c *RealClock) Now() time.Duration { return time.Since(c.start) }

// Sleep blocks for d.
func (c *RealClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// ManualClock is a virtual timeline: Sleep advances Now without blocking. It lets tests
// and offline renders step through a performance instantly.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	sleeps int
}

// NewManualClock returns a manual clock at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the virtual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the virtual time by d.
func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now += d
	}
	c.sleeps++
}

// Sleeps reports how many times Sleep was called.
func (c *ManualClock) Sleeps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleeps
}
