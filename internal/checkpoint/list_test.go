package checkpoint

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireGrowsEmptyList(t *testing.T) {
	t.Parallel()

	var l List
	assert.Nil(t, l.Head())
	assert.Equal(t, 0, l.Len())

	n, grew := l.Acquire()
	require.NotNil(t, n)
	assert.True(t, grew)
	assert.True(t, n.Live(), "fresh node is owned")
	assert.Zero(t, n.Version(), "fresh node is unpinned")
	assert.Same(t, n, l.Head())
	assert.Equal(t, 1, l.Len())
}

func TestAcquireInsertsAtHead(t *testing.T) {
	t.Parallel()

	var l List
	a, _ := l.Acquire()
	b, _ := l.Acquire()
	c, _ := l.Acquire()

	assert.Same(t, c, l.Head())
	assert.Same(t, b, c.Next())
	assert.Same(t, a, b.Next())
	assert.Nil(t, a.Next())
	assert.Equal(t, 3, l.Len())
}

func TestReleaseThenAcquireRecycles(t *testing.T) {
	t.Parallel()

	var l List
	a, _ := l.Acquire()
	b, _ := l.Acquire()
	a.Pin(7)
	b.Pin(9)

	l.Release(a)
	l.Release(b)
	assert.False(t, a.Live())
	assert.Zero(t, a.Version())
	assert.False(t, b.Live())
	assert.Zero(t, b.Version())

	c, grew := l.Acquire()
	assert.False(t, grew, "free node must be reused before growing")
	assert.True(t, c == a || c == b, "reclaimed one of the released nodes")
	assert.True(t, c.Live())
	assert.Zero(t, c.Version(), "reclaimed node stays unpinned until checkout")
	assert.Equal(t, 2, l.Len())
}

func TestReleasedNodeLooksNeverUsed(t *testing.T) {
	t.Parallel()

	var l List
	n, _ := l.Acquire()
	n.Pin(42)
	l.Release(n)

	fresh := &Node{}
	assert.Equal(t, fresh.Version(), n.Version())
	assert.Equal(t, fresh.Live(), n.Live())
	assert.False(t, l.IsRegistered(42))
}

func TestSynchronizeWith(t *testing.T) {
	t.Parallel()

	var l List
	low, _ := l.Acquire()
	unpinned, _ := l.Acquire()
	high, _ := l.Acquire()
	low.Pin(3)
	high.Pin(10)
	_ = unpinned

	// Head is high, then unpinned, then low
	assert.Same(t, low, l.SynchronizeWith(5, l.Head()))
	assert.Same(t, low, l.SynchronizeWith(4, low), "scan starts at the given node")
	assert.Nil(t, l.SynchronizeWith(3, l.Head()), "version equal to target is not lagging")
	assert.Same(t, high, l.SynchronizeWith(11, l.Head()))
	assert.Nil(t, l.SynchronizeWith(11, nil))

	l.Release(low)
	assert.Nil(t, l.SynchronizeWith(5, l.Head()), "released nodes never lag")
}

func TestIsRegisteredAndMinPinned(t *testing.T) {
	t.Parallel()

	var l List
	_, ok := l.MinPinned()
	assert.False(t, ok)

	a, _ := l.Acquire()
	b, _ := l.Acquire()
	_, ok = l.MinPinned()
	assert.False(t, ok, "owned but unpinned nodes do not count")
	assert.False(t, l.IsRegistered(0))

	a.Pin(8)
	b.Pin(5)
	assert.True(t, l.IsRegistered(8))
	assert.True(t, l.IsRegistered(5))
	assert.False(t, l.IsRegistered(6))

	min, ok := l.MinPinned()
	require.True(t, ok)
	assert.Equal(t, uint64(5), min)

	l.Release(b)
	min, ok = l.MinPinned()
	require.True(t, ok)
	assert.Equal(t, uint64(8), min)
}

func TestConcurrentAcquireRelease(t *testing.T) {
	t.Parallel()

	const (
		numGoroutines = 64
		iterations    = 2000
	)

	var l List
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				n, _ := l.Acquire()
				// No one else may own this node while we hold it
				if !assert.Zero(t, n.Version(), "acquired a pinned node") {
					return
				}
				v := uint64(id*iterations + j + 1)
				n.Pin(v)
				if !assert.Equal(t, v, n.Version(), "node pinned by another owner") {
					return
				}
				l.Release(n)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, l.Len(), numGoroutines, "list never exceeds peak concurrency")
	for n := l.Head(); n != nil; n = n.Next() {
		assert.False(t, n.Live())
		assert.Zero(t, n.Version())
	}
}
