package checkpoint

import "sync/atomic"

// Node records the epoch its current owner is pinned at. Nodes are linked
// once and never unlinked; ownership moves between participants through
// the live flag.
type Node struct {
	next    *Node         // Immutable once the node is published
	version atomic.Uint64 // 0 = not pinned
	live    atomic.Bool   // true = owned by a participant
}

// Next returns the node linked after n, or nil at the tail.
func (n *Node) Next() *Node {
	return n.next
}

// Version returns the epoch the node is pinned at, 0 if unpinned.
func (n *Node) Version() uint64 {
	return n.version.Load()
}

// Live reports whether a participant currently owns the node.
func (n *Node) Live() bool {
	return n.live.Load()
}

// Pin publishes v as the owner's current epoch. Only the owner may call it.
func (n *Node) Pin(v uint64) {
	n.version.Store(v)
}

// lagging reports whether n is pinned strictly below target.
func (n *Node) lagging(target uint64) bool {
	v := n.version.Load()
	return v != 0 && v < target
}
