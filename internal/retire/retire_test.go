package retire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetireReleaseOrder(t *testing.T) {
	t.Parallel()

	l := New[string]()
	l.Retire(50, "e")
	l.Retire(10, "a", "b")
	l.Retire(30, "d")
	l.Retire(20, "c")
	assert.Equal(t, 5, l.Len())

	oldest, ok := l.Oldest()
	require.True(t, ok)
	assert.Equal(t, uint64(10), oldest)

	// Release up to 25 should release epochs 10 and 20, oldest first
	assert.Equal(t, []string{"a", "b", "c"}, l.Release(25))
	assert.Equal(t, 2, l.Len())

	// Boundary epoch is inclusive
	assert.Equal(t, []string{"d"}, l.Release(30))

	assert.Nil(t, l.Release(49))
	assert.Equal(t, []string{"e"}, l.Release(50))

	assert.Zero(t, l.Len())
	_, ok = l.Oldest()
	assert.False(t, ok)
}

func TestRetireEmpty(t *testing.T) {
	t.Parallel()

	l := New[int]()
	l.Retire(3)
	assert.Zero(t, l.Len(), "retiring nothing records nothing")
	assert.Nil(t, l.Release(100))
}
