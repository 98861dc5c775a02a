package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"epochsync"
)

// StressOptions holds flags for the stress command.
type StressOptions struct {
	*RootOptions
	Profile string
	StressConfig
}

// StressConfig is the workload the stress command runs.
type StressConfig struct {
	Participants int
	Iterations   int
	Locked       bool
	Backoff      time.Duration
}

// StressReport is the outcome of a stress run.
type StressReport struct {
	RunID        string  `json:"run_id"`
	Strategy     string  `json:"strategy"`
	Participants int     `json:"participants"`
	Iterations   int     `json:"iterations"`
	Tip          uint64  `json:"tip"`
	Nodes        int     `json:"nodes"`
	ElapsedMS    float64 `json:"elapsed_ms"`
}

func (r *StressReport) Fields() []Field {
	return []Field{
		{"run", r.RunID},
		{"strategy", r.Strategy},
		{"participants", r.Participants},
		{"iterations", r.Iterations},
		{"tip", r.Tip},
		{"nodes", r.Nodes},
		{"elapsed (ms)", r.ElapsedMS},
	}
}

// NewStressCommand creates the stress command.
func NewStressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Churn participants while a coordinator increments and awaits",
		Long: `Each participant repeatedly acquires a handle, checks out the current
epoch and releases. A coordinator increments the epoch and awaits quiescence
once per iteration. The run fails unless the final tip is 1 + iterations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Profile != "" {
				p, err := LoadProfile(opts.Profile)
				if err != nil {
					return WrapExitError(ExitCommandError, "load profile", err)
				}
				opts.applyProfile(cmd, p)
			}
			return runStress(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Profile, "profile", "", "YAML workload profile")
	cmd.Flags().IntVarP(&opts.Participants, "participants", "p", 100, "number of participant goroutines")
	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 1000, "iterations per participant and coordinator")
	cmd.Flags().BoolVar(&opts.Locked, "locked", false, "force the spinlock epoch counter")
	cmd.Flags().DurationVar(&opts.Backoff, "backoff", epochsync.DefaultBackoffUnit, "await backoff unit")

	return cmd
}

// applyProfile copies profile values for every flag not set explicitly.
func (o *StressOptions) applyProfile(cmd *cobra.Command, p Profile) {
	flags := cmd.Flags()
	if !flags.Changed("participants") && p.Participants > 0 {
		o.Participants = p.Participants
	}
	if !flags.Changed("iterations") && p.Iterations > 0 {
		o.Iterations = p.Iterations
	}
	if !flags.Changed("locked") {
		o.Locked = o.Locked || p.Locked
	}
	if !flags.Changed("backoff") && p.Backoff > 0 {
		o.Backoff = p.Backoff
	}
}

func runStress(cmd *cobra.Command, opts *StressOptions) error {
	log, flush, err := opts.newLogger()
	if err != nil {
		return WrapExitError(ExitCommandError, "stress", err)
	}
	defer flush()

	report, err := RunStress(opts.StressConfig, log)
	if err != nil {
		return WrapExitError(ExitFailure, "stress", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Write(report)
}

// RunStress runs the workload and checks that the coordinator observed
// exactly one epoch per iteration.
func RunStress(cfg StressConfig, log epochsync.Logger) (*StressReport, error) {
	if cfg.Participants < 0 || cfg.Iterations < 0 {
		return nil, fmt.Errorf("participants and iterations must not be negative")
	}

	options := []epochsync.Option{epochsync.WithLogger(log)}
	if cfg.Locked {
		options = append(options, epochsync.WithLockedCounter())
	}
	if cfg.Backoff > 0 {
		options = append(options, epochsync.WithBackoffUnit(cfg.Backoff))
	}
	vs := epochsync.New(options...)

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(cfg.Participants)
	for i := 0; i < cfg.Participants; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < cfg.Iterations; j++ {
				h := vs.CheckoutHandle()
				h.Release()
			}
		}()
	}

	coordinator := vs.GetHandle()
	var awaitErr error
	for j := 0; j < cfg.Iterations; j++ {
		v := coordinator.Increment()
		if awaitErr = coordinator.Await(v); awaitErr != nil {
			break
		}
	}
	coordinator.Release()
	wg.Wait()

	if awaitErr != nil {
		return nil, awaitErr
	}

	report := &StressReport{
		RunID:        uuid.NewString(),
		Strategy:     vs.Strategy(),
		Participants: cfg.Participants,
		Iterations:   cfg.Iterations,
		Tip:          vs.Tip(),
		Nodes:        vs.Nodes(),
		ElapsedMS:    float64(time.Since(start).Microseconds()) / 1000,
	}
	if want := uint64(1 + cfg.Iterations); report.Tip != want {
		return report, fmt.Errorf("final tip %d, want %d", report.Tip, want)
	}
	return report, nil
}
