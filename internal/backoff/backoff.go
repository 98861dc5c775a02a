package backoff

import "time"

// Linear sleeps unit*attempt between retries.
type Linear struct {
	unit  int64
	sleep func(ns int64)
}

// NewLinear returns a backoff that calls sleep with unit*attempt
// nanoseconds.
func NewLinear(unit time.Duration, sleep func(ns int64)) *Linear {
	return &Linear{unit: int64(unit), sleep: sleep}
}

// Delay returns the pause for the given attempt, counted from 1.
func (b *Linear) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return time.Duration(b.unit * int64(attempt))
}

// Wait pauses for Delay(attempt).
func (b *Linear) Wait(attempt int) {
	if d := b.Delay(attempt); d > 0 {
		b.sleep(int64(d))
	}
}
