// Package checkpoint implements the append-only pool of checkpoint nodes
// that participants pin epochs into, and the scans that detect quiescence.
//
// Nodes are never removed. Removing from a list that other goroutines are
// traversing without locks would need a reclamation scheme of its own; a
// released node is instead marked free and recycled by the next Acquire.
// The list therefore grows to the peak number of concurrent owners.
package checkpoint

import (
	"sync/atomic"
)

// List is a lock-free singly linked list of checkpoint nodes.
type List struct {
	head  atomic.Pointer[Node]
	count atomic.Int64
}

// Head returns the first node, or nil when the list is empty.
func (l *List) Head() *Node {
	return l.head.Load()
}

// Len returns the number of nodes ever linked.
func (l *List) Len() int {
	return int(l.count.Load())
}

// Acquire hands the caller a live, unpinned node. A free node is reclaimed
// if one exists; otherwise a new node is pushed at the head. grew reports
// which of the two happened.
func (l *List) Acquire() (n *Node, grew bool) {
	for n = l.head.Load(); n != nil; n = n.next {
		if n.live.Load() {
			continue
		}
		if n.live.CompareAndSwap(false, true) {
			// Release clears version before live, so a claimed node is unpinned.
			return n, false
		}
	}

	n = &Node{}
	n.live.Store(true)
	for {
		next := l.head.Load()
		n.next = next
		if l.head.CompareAndSwap(next, n) {
			l.count.Add(1)
			return n, true
		}
	}
}

// Release returns n to the pool. The caller must own n.
//
// version is cleared before live so that any scanner observing live ==
// false also observes version == 0.
func (l *List) Release(n *Node) {
	n.version.Store(0)
	n.live.Store(false)
}

// SynchronizeWith returns the first node from start onwards that is pinned
// below target, or nil if there is none.
func (l *List) SynchronizeWith(target uint64, start *Node) *Node {
	for n := start; n != nil; n = n.next {
		if n.lagging(target) {
			return n
		}
	}
	return nil
}

// IsRegistered reports whether some node is currently pinned at exactly
// version.
func (l *List) IsRegistered(version uint64) bool {
	if version == 0 {
		return false
	}
	for n := l.head.Load(); n != nil; n = n.next {
		if n.version.Load() == version {
			return true
		}
	}
	return false
}

// MinPinned returns the smallest pinned epoch across the list. ok is false
// when nothing is pinned.
func (l *List) MinPinned() (min uint64, ok bool) {
	for n := l.head.Load(); n != nil; n = n.next {
		if v := n.version.Load(); v != 0 && (!ok || v < min) {
			min, ok = v, true
		}
	}
	return min, ok
}
