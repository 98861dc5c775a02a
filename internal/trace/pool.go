package trace

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"

	"epochsync"
	"epochsync/internal/retire"
)

// DefaultCacheSize is the number of (generation, id) pairs remembered to
// skip re-interning without touching the buffer.
const DefaultCacheSize = 4096

type key struct {
	gen uint64
	id  uint64
}

func hashKey(k key) uint32 {
	h := k.id ^ (k.gen * 0x9e3779b97f4a7c15)
	return uint32(h ^ h>>32)
}

type retiredBuffer struct {
	buf   *Buffer
	epoch uint64
}

// StringPool interns strings into rotating buffers.
type StringPool struct {
	versions *epochsync.System
	sink     Sink
	current  atomic.Pointer[Buffer]
	seen     *freelru.SyncedLRU[key, struct{}]
	retired  *retire.List[retiredBuffer]

	flushMu sync.Mutex // Serializes Rotate, Flush and Collect
	nextGen uint64     // guarded by flushMu
}

// NewStringPool creates a pool writing chunks to sink. cacheSize 0 selects
// DefaultCacheSize.
func NewStringPool(versions *epochsync.System, sink Sink, cacheSize uint32) (*StringPool, error) {
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}
	seen, err := freelru.NewSynced[key, struct{}](cacheSize, hashKey)
	if err != nil {
		return nil, fmt.Errorf("create string cache: %w", err)
	}

	p := &StringPool{
		versions: versions,
		sink:     sink,
		seen:     seen,
		retired:  retire.New[retiredBuffer](),
		nextGen:  1,
	}
	p.current.Store(newBuffer(0))
	return p, nil
}

// Add interns s into the current buffer and returns its id. added is false
// when the current generation already holds s.
func (p *StringPool) Add(s string) (id uint64, added bool) {
	id = xxhash.Sum64String(s)

	h := p.versions.CheckoutHandle()
	defer h.Release()

	buf := p.current.Load()
	k := key{gen: buf.gen, id: id}
	if _, ok := p.seen.Get(k); ok {
		return id, false
	}
	added = buf.append(Entry{ID: id, Value: s})
	p.seen.Add(k, struct{}{})
	return id, added
}

// Generation returns the generation of the buffer writers currently use.
func (p *StringPool) Generation() uint64 {
	return p.current.Load().gen
}

// Pending returns the number of rotated buffers not yet written.
func (p *StringPool) Pending() int {
	return p.retired.Len()
}

// Rotate swaps in a fresh buffer and retires the old one without waiting.
// It returns the epoch the old buffer was retired at.
func (p *StringPool) Rotate() uint64 {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()
	return p.rotate()
}

// Flush rotates the buffer, waits until no writer can still append to it,
// and writes it together with any earlier retired buffer. It returns the
// number of entries written.
func (p *StringPool) Flush() (int, error) {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	epoch := p.rotate()

	h := p.versions.GetHandle()
	defer h.Release()
	if err := h.Await(epoch); err != nil {
		return 0, err
	}
	return p.write(epoch)
}

// Collect writes every retired buffer that no writer can still reach and
// leaves the rest for a later call. It never blocks on writers.
func (p *StringPool) Collect() (int, error) {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	// The tip must be read before the scan: every buffer retired so far was
	// retired at or below it.
	safe := p.versions.Tip()
	if min, ok := p.versions.MinPinned(); ok && min < safe {
		safe = min
	}
	return p.write(safe)
}

func (p *StringPool) rotate() uint64 {
	old := p.current.Swap(newBuffer(p.nextGen))
	p.nextGen++

	// Writers pinned at or after epoch loaded the new buffer.
	epoch := p.versions.Increment()
	p.retired.Retire(epoch, retiredBuffer{buf: old, epoch: epoch})
	return epoch
}

func (p *StringPool) write(safe uint64) (int, error) {
	written := 0
	released := p.retired.Release(safe)
	for i, r := range released {
		c := Chunk{
			Generation: r.buf.gen,
			Epoch:      r.epoch,
			Entries:    r.buf.snapshot(),
		}
		if err := p.sink.WriteChunk(c); err != nil {
			// Unwritten buffers go back so the next call retries them.
			for _, rest := range released[i:] {
				p.retired.Retire(rest.epoch, rest)
			}
			return written, fmt.Errorf("write chunk %d: %w", c.Generation, err)
		}
		written += len(c.Entries)
	}
	return written, nil
}
