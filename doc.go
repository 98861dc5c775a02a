// Package epochsync lets many goroutines pin themselves to a monotonically
// increasing epoch while a coordinator waits for every pinned goroutine to
// move past a target epoch. It is the grace-period half of an epoch-based
// reclamation scheme: once Await(v) returns, no live participant still
// relies on state published before epoch v.
//
// Participants never block. Only the goroutine calling Await sleeps, with a
// linear backoff, until a full scan finds no participant pinned below the
// target.
//
//	vs := epochsync.New()
//
//	// participant
//	h := vs.CheckoutHandle()
//	defer h.Release()
//	// ... read shared state ...
//
//	// coordinator
//	c := vs.GetHandle()
//	defer c.Release()
//	v := c.Increment()
//	if err := c.Await(v); err != nil {
//		return err
//	}
//	// state unlinked before Increment is unreachable now
//
// Await has no timeout and no cancellation. A participant that pins an
// epoch and never checks out again or releases stalls every coordinator
// waiting on a later epoch.
package epochsync
