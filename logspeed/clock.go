package logspeed

import "time"

// Clock returns a non-decreasing timestamp measured from an arbitrary epoch.
// It is not wall-clock time and must never go backward within a process.
type Clock func() time.Duration

// MonotonicClock returns a Clock backed by the runtime's monotonic reading.
func MonotonicClock() Clock {
	epoch := time.Now()
	return func() time.Duration {
		return time.Since(epoch)
	}
}
