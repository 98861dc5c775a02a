package counter

import (
	"runtime"
	"sync/atomic"
)

// spinlock is a test-and-set lock. The critical sections it guards are a
// handful of instructions, so waiters yield instead of parking.
type spinlock struct {
	held atomic.Bool
}

func (l *spinlock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (l *spinlock) Unlock() {
	l.held.Store(false)
}
