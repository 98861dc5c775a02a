package trace

import "sync"

// Sink receives drained chunks in generation order.
type Sink interface {
	WriteChunk(Chunk) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Chunk) error

func (f SinkFunc) WriteChunk(c Chunk) error {
	return f(c)
}

// MemorySink keeps every chunk written to it.
type MemorySink struct {
	mu     sync.Mutex
	chunks []Chunk
}

func (s *MemorySink) WriteChunk(c Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, c)
	return nil
}

// Chunks returns a copy of the chunks written so far.
func (s *MemorySink) Chunks() []Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Chunk(nil), s.chunks...)
}
