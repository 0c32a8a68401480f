// Package clock abstracts timer scheduling so the animator and tour engine
// can be driven by wall time in production and by a manual clock in tests.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer (false if it already fired or was stopped).
	Stop() bool
}

// Clock schedules one-shot callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is a Clock backed by the time package. Callbacks run on their own
// goroutine, as with time.AfterFunc.
type Real struct{}

// Now returns the current wall time.
func (Real) Now() time.Time { return time.Now() }

// AfterFunc schedules f after d.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
