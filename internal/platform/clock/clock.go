// Package clock provides the frame clock hosts use to measure Δt.
package clock

import (
	"sync"
	"time"
)

// Clock measures elapsed time between frames.
type Clock interface {
	// Restart returns the seconds since the last restart and starts counting again.
	Restart() float64
	// Elapsed returns the seconds since the last restart without resetting.
	Elapsed() float64
}

// Real is a wall-clock Clock.
type Real struct {
	now   func() time.Time
	start time.Time
}

// NewReal creates a clock that starts counting immediately.
func NewReal() *Real {
	c := &Real{now: time.Now}
	c.start = c.now()
	return c
}

// Restart implements Clock.
func (c *Real) Restart() float64 {
	now := c.now()
	elapsed := now.Sub(c.start).Seconds()
	c.start = now
	return elapsed
}

// Elapsed implements Clock.
func (c *Real) Elapsed() float64 {
	return c.now().Sub(c.start).Seconds()
}

// Manual is a Clock advanced explicitly, for tests and replays.
type Manual struct {
	mu      sync.Mutex
	elapsed float64
}

// NewManual creates a manual clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Advance moves the clock forward by d.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	c.elapsed += d.Seconds()
	c.mu.Unlock()
}

// Restart implements Clock.
func (c *Manual) Restart() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.elapsed
	c.elapsed = 0
	return e
}

// Elapsed implements Clock.
func (c *Manual) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}
