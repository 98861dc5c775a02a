package retire

import (
	"sort"
	"sync"
)

// List holds values retired at an epoch until no participant can still be
// reading them. Values are released in two stages, as pages are in a
// pending freelist:
// 1. Retire: the value is unlinked and recorded at the epoch it left at
// 2. Release: once every pinned participant is at or past that epoch, the
// value is handed back to the caller
type List[T any] struct {
	mu      sync.Mutex
	pending map[uint64][]T // epoch -> values retired at that epoch
	count   int
}

// New creates an empty retire list.
func New[T any]() *List[T] {
	return &List[T]{
		pending: make(map[uint64][]T),
	}
}

// Retire records values as unlinked at epoch.
func (l *List[T]) Retire(epoch uint64, values ...T) {
	if len(values) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending[epoch] = append(l.pending[epoch], values...)
	l.count += len(values)
}

// Release removes and returns every value retired at an epoch <= safe,
// oldest epoch first.
func (l *List[T]) Release(safe uint64) []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	var epochs []uint64
	for epoch := range l.pending {
		if epoch <= safe {
			epochs = append(epochs, epoch)
		}
	}
	if len(epochs) == 0 {
		return nil
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i] < epochs[j] })

	var released []T
	for _, epoch := range epochs {
		released = append(released, l.pending[epoch]...)
		delete(l.pending, epoch)
	}
	l.count -= len(released)
	return released
}

// Oldest returns the smallest epoch with retired values.
func (l *List[T]) Oldest() (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		oldest uint64
		ok     bool
	)
	for epoch := range l.pending {
		if !ok || epoch < oldest {
			oldest, ok = epoch, true
		}
	}
	return oldest, ok
}

// Len returns the number of values waiting to be released.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
