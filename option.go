package epochsync

import (
	"time"

	"epochsync/internal/platform"
)

const (
	// DefaultBackoffUnit is the first pause of an Await that found a lagging
	// participant. Each further pass waits one more unit.
	DefaultBackoffUnit = 10 * time.Microsecond

	// DefaultStallThreshold is the number of failed passes after which Await
	// logs a warning. It keeps waiting regardless.
	DefaultStallThreshold = 1000
)

// Options configures a System.
type Options struct {
	logger         Logger
	backoffUnit    time.Duration
	sleep          func(ns int64)
	forceLocked    bool
	stallThreshold int
}

func defaultOptions() Options {
	return Options{
		logger:         DiscardLogger{},
		backoffUnit:    DefaultBackoffUnit,
		sleep:          platform.Nanosleep,
		stallThreshold: DefaultStallThreshold,
	}
}

// Option configures a System using the functional options pattern.
type Option func(*Options)

// WithLogger sets the logger used for list growth and stalled awaits.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithBackoffUnit sets the base pause between Await passes.
//
//goland:noinspection GoUnusedExportedFunction
func WithBackoffUnit(unit time.Duration) Option {
	return func(opts *Options) {
		if unit > 0 {
			opts.backoffUnit = unit
		}
	}
}

// WithSleeper replaces the nanosleep primitive Await backs off with.
//
//goland:noinspection GoUnusedExportedFunction
func WithSleeper(sleep func(ns int64)) Option {
	return func(opts *Options) {
		if sleep != nil {
			opts.sleep = sleep
		}
	}
}

// WithLockedCounter forces the spinlock epoch counter even when the target
// supports a native 64-bit compare-and-swap.
//
//goland:noinspection GoUnusedExportedFunction
func WithLockedCounter() Option {
	return func(opts *Options) {
		opts.forceLocked = true
	}
}

// WithStallThreshold sets how many failed Await passes are tolerated before
// a warning is logged. Zero disables the warning.
//
//goland:noinspection GoUnusedExportedFunction
func WithStallThreshold(passes int) Option {
	return func(opts *Options) {
		if passes >= 0 {
			opts.stallThreshold = passes
		}
	}
}
