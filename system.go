package epochsync

import (
	"fmt"

	"epochsync/internal/backoff"
	"epochsync/internal/checkpoint"
	"epochsync/internal/counter"
	"epochsync/internal/platform"
)

// System is a version system: a global epoch plus the checkpoint nodes
// participants pin epochs into. It is safe for concurrent use.
type System struct {
	epoch   counter.Counter
	nodes   checkpoint.List
	backoff *backoff.Linear
	logger  Logger

	stallThreshold int
}

// New creates a System whose epoch starts at 1.
func New(options ...Option) *System {
	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	wide := platform.HasWideCAS() && !opts.forceLocked
	return &System{
		epoch:          counter.New(wide),
		backoff:        backoff.NewLinear(opts.backoffUnit, opts.sleep),
		logger:         opts.logger,
		stallThreshold: opts.stallThreshold,
	}
}

// Tip returns the current epoch.
func (s *System) Tip() uint64 {
	return s.epoch.Tip()
}

// Increment advances the epoch and returns the new value. Increments are
// linearizable: each return is greater than every return that completed
// before the call began.
func (s *System) Increment() uint64 {
	return s.epoch.Increment()
}

// Strategy names the epoch counter implementation, "cas" or "locked".
func (s *System) Strategy() string {
	return s.epoch.Strategy()
}

// GetHandle acquires a checkpoint node without pinning it.
func (s *System) GetHandle() *Handle {
	return &Handle{sys: s, node: s.acquire()}
}

// CheckoutHandle acquires a checkpoint node and pins it at the current tip.
func (s *System) CheckoutHandle() *Handle {
	h := s.GetHandle()
	h.node.Pin(s.epoch.Tip())
	return h
}

// Await blocks the calling goroutine until no participant is pinned below
// target. It returns ErrFutureVersion if target has not been produced by
// Increment yet, since such a wait could never finish.
func (s *System) Await(target uint64) error {
	return s.await(target, nil)
}

// Quiescent reports, with a single scan, whether no participant is pinned
// below target.
func (s *System) Quiescent(target uint64) bool {
	return s.lagging(target, nil) == nil
}

// MinPinned returns the oldest epoch any participant is pinned at. ok is
// false when no participant is pinned.
func (s *System) MinPinned() (uint64, bool) {
	return s.nodes.MinPinned()
}

// IsRegistered reports whether some participant is pinned at exactly
// version. Intended for invariant checks in tests.
func (s *System) IsRegistered(version uint64) bool {
	return s.nodes.IsRegistered(version)
}

// Nodes returns the number of checkpoint nodes allocated so far, which is
// the peak number of concurrently held handles.
func (s *System) Nodes() int {
	return s.nodes.Len()
}

func (s *System) acquire() *checkpoint.Node {
	n, grew := s.nodes.Acquire()
	if grew {
		s.logger.Info("checkpoint list grew", "nodes", s.nodes.Len())
	}
	return n
}

// await rescans from the head until no node other than self lags target.
// self is skipped because its owner is blocked here and cannot advance it.
func (s *System) await(target uint64, self *checkpoint.Node) error {
	if tip := s.epoch.Tip(); target > tip {
		return fmt.Errorf("%w: target %d, tip %d", ErrFutureVersion, target, tip)
	}

	for attempt := 1; ; attempt++ {
		n := s.lagging(target, self)
		if n == nil {
			return nil
		}
		if attempt == s.stallThreshold {
			s.logger.Warn("await stalled on lagging participant",
				"target", target, "pinned", n.Version(), "passes", attempt)
		}
		s.backoff.Wait(attempt)
	}
}

func (s *System) lagging(target uint64, self *checkpoint.Node) *checkpoint.Node {
	n := s.nodes.SynchronizeWith(target, s.nodes.Head())
	for n != nil && n == self {
		n = s.nodes.SynchronizeWith(target, n.Next())
	}
	return n
}
