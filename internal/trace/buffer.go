package trace

import "sync"

// Entry is one interned string.
type Entry struct {
	ID    uint64 `json:"id"`
	Value string `json:"value"`
}

// Chunk is the content of one drained buffer.
type Chunk struct {
	Generation uint64  `json:"generation"`
	Epoch      uint64  `json:"epoch"` // epoch the buffer was retired at
	Entries    []Entry `json:"entries"`
}

// Buffer collects the entries of one generation.
type Buffer struct {
	gen     uint64
	mu      sync.Mutex
	ids     map[uint64]struct{}
	entries []Entry
}

func newBuffer(gen uint64) *Buffer {
	return &Buffer{
		gen: gen,
		ids: make(map[uint64]struct{}),
	}
}

// Generation returns the buffer's rotation sequence number.
func (b *Buffer) Generation() uint64 {
	return b.gen
}

// append adds e unless its ID is already present.
func (b *Buffer) append(e Entry) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.ids[e.ID]; exists {
		return false
	}
	b.ids[e.ID] = struct{}{}
	b.entries = append(b.entries, e)
	return true
}

// snapshot returns a copy of the entries.
func (b *Buffer) snapshot() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Entry(nil), b.entries...)
}

// Len returns the number of entries currently held.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
