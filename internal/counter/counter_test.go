package counter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strategies() map[string]Counter {
	return map[string]Counter{
		StrategyCAS:    New(true),
		StrategyLocked: New(false),
	}
}

func TestCounterSequential(t *testing.T) {
	t.Parallel()

	for name, c := range strategies() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, c.Strategy())
			assert.Equal(t, Initial, c.Tip(), "tip starts at 1")

			assert.Equal(t, uint64(2), c.Increment())
			assert.Equal(t, uint64(3), c.Increment())
			assert.Equal(t, uint64(4), c.Increment())
			assert.Equal(t, uint64(4), c.Tip())
		})
	}
}

func TestCounterConcurrentIncrementsAreUnique(t *testing.T) {
	t.Parallel()

	const (
		numGoroutines = 32
		perGoroutine  = 500
	)

	for name, c := range strategies() {
		t.Run(name, func(t *testing.T) {
			results := make([][]uint64, numGoroutines)
			var wg sync.WaitGroup
			wg.Add(numGoroutines)
			for i := 0; i < numGoroutines; i++ {
				go func(id int) {
					defer wg.Done()
					local := make([]uint64, 0, perGoroutine)
					for j := 0; j < perGoroutine; j++ {
						local = append(local, c.Increment())
					}
					results[id] = local
				}(i)
			}
			wg.Wait()

			seen := make(map[uint64]struct{}, numGoroutines*perGoroutine)
			for _, local := range results {
				// Each goroutine observes its own increments in order
				for j := 1; j < len(local); j++ {
					require.Greater(t, local[j], local[j-1])
				}
				for _, v := range local {
					_, dup := seen[v]
					require.False(t, dup, "value %d returned twice", v)
					seen[v] = struct{}{}
				}
			}
			assert.Equal(t, Initial+numGoroutines*perGoroutine, c.Tip())
		})
	}
}

func TestSpinlockMutualExclusion(t *testing.T) {
	t.Parallel()

	var (
		l     spinlock
		total int
		wg    sync.WaitGroup
	)
	wg.Add(16)
	for i := 0; i < 16; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				l.Lock()
				total++
				l.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 16000, total)
}
