package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"epochsync"
	"epochsync/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the epochctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "epochctl",
		Short:         "Exercise the epoch version system",
		Long:          "Drive concurrent participants and coordinators against an epoch version system and report what they observed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewStressCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger returns a zap-backed logger in verbose mode and a discarding
// one otherwise. The returned func flushes buffered entries.
func (o *RootOptions) newLogger() (epochsync.Logger, func(), error) {
	if !o.Verbose {
		return epochsync.DiscardLogger{}, func() {}, nil
	}
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return logger.NewZap(z), func() { _ = z.Sync() }, nil
}
