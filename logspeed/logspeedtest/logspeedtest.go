// Package logspeedtest provides a manual clock and a recording sink for
// testing code that uses logspeed.
package logspeedtest

import (
	"time"

	"github.com/alexander-akhmetov/logspeed/logspeed"
)

// FakeClock is a clock that only moves when told to.
type FakeClock struct {
	now time.Duration
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now += d
}

// Set moves the clock to d. Setting it backward is the caller's problem.
func (c *FakeClock) Set(d time.Duration) {
	c.now = d
}

// Clock returns c as a logspeed.Clock.
func (c *FakeClock) Clock() logspeed.Clock {
	return c.Now
}

// Recorder is a Sink that keeps every line it receives.
type Recorder struct {
	lines []string
}

var _ logspeed.Sink = (*Recorder)(nil)

func (r *Recorder) WriteLine(line string) {
	r.lines = append(r.lines, line)
}

// Lines returns the recorded lines in write order.
func (r *Recorder) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset forgets all recorded lines.
func (r *Recorder) Reset() {
	r.lines = nil
}
