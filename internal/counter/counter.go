package counter

import (
	"sync/atomic"
)

// Initial is the first epoch value. Zero is reserved for "not pinned".
const Initial uint64 = 1

const (
	StrategyCAS    = "cas"
	StrategyLocked = "locked"
)

// Counter is a monotonically increasing 64-bit epoch.
type Counter interface {
	// Tip returns the current value.
	Tip() uint64
	// Increment advances the value by one and returns the new value.
	Increment() uint64
	// Strategy names the implementation chosen at construction.
	Strategy() string
}

// New returns a counter starting at Initial. The strategy is fixed here:
// wide selects the compare-and-swap loop, otherwise increments are
// serialized by a spinlock.
func New(wide bool) Counter {
	if wide {
		c := &casCounter{}
		c.value.Store(Initial)
		return c
	}
	c := &lockedCounter{}
	c.value.Store(Initial)
	return c
}

// casCounter advances with an optimistic compare-and-swap loop. Retries are
// proportional to contention.
type casCounter struct {
	value atomic.Uint64
}

func (c *casCounter) Tip() uint64 {
	return c.value.Load()
}

func (c *casCounter) Increment() uint64 {
	for {
		cmp := c.value.Load()
		next := cmp + 1
		if c.value.CompareAndSwap(cmp, next) {
			return next
		}
	}
}

func (c *casCounter) Strategy() string {
	return StrategyCAS
}

// lockedCounter is the fallback for targets without native 64-bit CAS.
// Writes happen only under mu; reads stay lock-free.
type lockedCounter struct {
	mu    spinlock
	value atomic.Uint64
}

func (c *lockedCounter) Tip() uint64 {
	return c.value.Load()
}

func (c *lockedCounter) Increment() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.value.Load() + 1
	c.value.Store(next)
	return next
}

func (c *lockedCounter) Strategy() string {
	return StrategyLocked
}
