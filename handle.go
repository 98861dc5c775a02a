package epochsync

import (
	"epochsync/internal/checkpoint"
)

// Handle is one participant's claim on a checkpoint node. It must not be
// used from more than one goroutine at a time; other goroutines only ever
// observe its node through scans.
//
// Handles are scoped resources: pair every GetHandle or CheckoutHandle with
// a deferred Release.
type Handle struct {
	sys  *System
	node *checkpoint.Node // nil once released
}

// Checkout pins the handle at the current tip, replacing any earlier pin.
func (h *Handle) Checkout() error {
	if h.node == nil {
		return ErrHandleReleased
	}
	h.node.Pin(h.sys.epoch.Tip())
	return nil
}

// Increment advances the system epoch and returns the new value.
func (h *Handle) Increment() uint64 {
	return h.sys.Increment()
}

// Await blocks until no other participant is pinned below target. The
// handle's own pin is ignored.
func (h *Handle) Await(target uint64) error {
	if h.node == nil {
		return ErrHandleReleased
	}
	return h.sys.await(target, h.node)
}

// Release returns the node to the pool. Calling Release again is a no-op,
// so an explicit Release may be followed by a deferred one.
func (h *Handle) Release() {
	if h.node == nil {
		return
	}
	h.sys.nodes.Release(h.node)
	h.node = nil
}

// Version returns the epoch the handle is pinned at, 0 if it is not pinned
// or has been released.
func (h *Handle) Version() uint64 {
	if h.node == nil {
		return 0
	}
	return h.node.Version()
}

// IsTracked reports whether the handle is pinned and its pin is visible in
// the system's node list. A false result for a handle that checked out
// means the node was recycled underneath it.
func (h *Handle) IsTracked() bool {
	if h.node == nil {
		return false
	}
	v := h.node.Version()
	return v != 0 && h.sys.IsRegistered(v)
}
