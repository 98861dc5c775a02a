// Package trace is the string pool of a tracing recorder. Writers intern
// strings into the current buffer from any goroutine without locking each
// other out; a single flusher periodically rotates the buffer and writes
// the old one to a Sink as a chunk.
//
// Writers pin an epoch for the duration of a write. The flusher swaps in a
// new buffer, advances the epoch and only drains the old buffer once no
// writer can still be appending to it: either by waiting for quiescence
// (Flush) or by deferring the drain until a later Collect finds every
// writer past the rotation epoch.
package trace
