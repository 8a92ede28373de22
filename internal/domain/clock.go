package domain

import "time"

// Clock supplies wall-clock time. Injected everywhere the core needs
// "now" so tests can run against a synthetic clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
