// Package pacing paces the render loops to a target frame rate.
package pacing

import (
	"sync"
	"time"
)

const (
	defaultFPS = 60
)

// FrameClock limits how often Tick returns, in the manner of a game loop
// clock: each Tick sleeps until a full frame interval has passed since the
// previous one.
type FrameClock struct {
	mu    sync.Mutex
	last  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// NewFrameClock creates a FrameClock backed by the wall clock.
func NewFrameClock() *FrameClock {
	return &FrameClock{
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Now returns the current time.
func (c *FrameClock) Now() time.Time {
	return c.now()
}

// Interval returns the frame interval for fps. Non-positive values use 60.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Tick waits out the remainder of the current frame at the given rate and
// returns the time elapsed since the previous Tick. The first call does not
// wait.
func (c *FrameClock) Tick(fps int) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	if wait := Interval(fps) - now.Sub(c.last); wait > 0 {
		c.sleep(wait)
		now = c.now()
	}
	elapsed := now.Sub(c.last)
	c.last = now
	return elapsed
}
