package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A workload finished but violated an invariant
	ExitCommandError = 2 // Command error (bad flags, unreadable profile, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Field is one labelled value of a text report.
type Field struct {
	Label string
	Value any
}

// Report is implemented by every command result.
type Report interface {
	Fields() []Field
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Write renders r as indented JSON or as aligned, locale-formatted text.
func (f *OutputFormatter) Write(r Report) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	p := message.NewPrinter(language.English)
	for _, field := range r.Fields() {
		format := "%-14s %v\n"
		switch field.Value.(type) {
		case int, uint64:
			format = "%-14s %d\n"
		case float64:
			format = "%-14s %.2f\n"
		}
		if _, err := p.Fprintf(f.Writer, format, field.Label+":", field.Value); err != nil {
			return err
		}
	}
	return nil
}
