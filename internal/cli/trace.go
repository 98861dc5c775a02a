package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"epochsync"
	"epochsync/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	TraceConfig
}

// TraceConfig is the workload the trace command runs.
type TraceConfig struct {
	Writers    int
	Strings    int // strings added per writer
	Vocabulary int // distinct strings shared by all writers
	Flushes    int
	Async      bool
}

// TraceReport is the outcome of a trace run.
type TraceReport struct {
	RunID     string  `json:"run_id"`
	Mode      string  `json:"mode"`
	Writers   int     `json:"writers"`
	Accepted  int     `json:"accepted"`
	Chunks    int     `json:"chunks"`
	Entries   int     `json:"entries"`
	Tip       uint64  `json:"tip"`
	Nodes     int     `json:"nodes"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

func (r *TraceReport) Fields() []Field {
	return []Field{
		{"run", r.RunID},
		{"mode", r.Mode},
		{"writers", r.Writers},
		{"accepted", r.Accepted},
		{"chunks", r.Chunks},
		{"entries", r.Entries},
		{"tip", r.Tip},
		{"nodes", r.Nodes},
		{"elapsed (ms)", r.ElapsedMS},
	}
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Intern strings from many writers while a flusher rotates chunks",
		Long: `Writers intern strings into a trace string pool while a flusher rotates
its buffer. In the default mode every flush waits for writers to leave the
old buffer; with --async rotations never wait and retired buffers are
collected once no writer can reach them. The run fails if any accepted
string is missing from the written chunks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, flush, err := opts.newLogger()
			if err != nil {
				return WrapExitError(ExitCommandError, "trace", err)
			}
			defer flush()

			report, err := RunTrace(opts.TraceConfig, log)
			if err != nil {
				return WrapExitError(ExitFailure, "trace", err)
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Write(report)
		},
	}

	cmd.Flags().IntVarP(&opts.Writers, "writers", "w", 8, "number of writer goroutines")
	cmd.Flags().IntVarP(&opts.Strings, "strings", "s", 10000, "strings added per writer")
	cmd.Flags().IntVar(&opts.Vocabulary, "vocabulary", 1000, "distinct strings shared by writers")
	cmd.Flags().IntVarP(&opts.Flushes, "flushes", "f", 50, "flushes issued while writers run")
	cmd.Flags().BoolVar(&opts.Async, "async", false, "rotate and collect without waiting for writers")

	return cmd
}

// RunTrace runs writers against a string pool and checks that every
// accepted string was written to exactly one chunk.
func RunTrace(cfg TraceConfig, log epochsync.Logger) (*TraceReport, error) {
	if cfg.Writers < 0 || cfg.Strings < 0 || cfg.Flushes < 0 || cfg.Vocabulary < 1 {
		return nil, fmt.Errorf("writers, strings and flushes must not be negative; vocabulary must be positive")
	}

	vs := epochsync.New(epochsync.WithLogger(log))
	sink := &trace.MemorySink{}
	pool, err := trace.NewStringPool(vs, sink, 0)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	var (
		mu       sync.Mutex
		accepted int
		wg       sync.WaitGroup
	)
	wg.Add(cfg.Writers)
	for i := 0; i < cfg.Writers; i++ {
		go func(id int) {
			defer wg.Done()
			n := 0
			for j := 0; j < cfg.Strings; j++ {
				if _, added := pool.Add(fmt.Sprintf("str-%d", (id+j)%cfg.Vocabulary)); added {
					n++
				}
			}
			mu.Lock()
			accepted += n
			mu.Unlock()
		}(i)
	}

	flush := pool.Flush
	if cfg.Async {
		flush = func() (int, error) {
			pool.Rotate()
			return pool.Collect()
		}
	}
	for i := 0; i < cfg.Flushes; i++ {
		if _, err := flush(); err != nil {
			return nil, err
		}
	}
	wg.Wait()

	// No writer is pinned any more, so a blocking flush drains everything
	// in either mode.
	if _, err := pool.Flush(); err != nil {
		return nil, err
	}

	report := &TraceReport{
		RunID:     uuid.NewString(),
		Mode:      "sync",
		Writers:   cfg.Writers,
		Accepted:  accepted,
		Tip:       vs.Tip(),
		Nodes:     vs.Nodes(),
		ElapsedMS: float64(time.Since(start).Microseconds()) / 1000,
	}
	if cfg.Async {
		report.Mode = "async"
	}
	for _, c := range sink.Chunks() {
		report.Chunks++
		report.Entries += len(c.Entries)
	}
	if report.Entries != report.Accepted {
		return report, fmt.Errorf("%d strings accepted but %d written", report.Accepted, report.Entries)
	}
	if pending := pool.Pending(); pending != 0 {
		return report, fmt.Errorf("%d buffers left unwritten", pending)
	}
	return report, nil
}
