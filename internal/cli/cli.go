// Package cli wires configuration, logging and the cobra commands behind
// the htmldata and shelterpoi binaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/shelters/internal/config"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Streams are the writers a command prints to.
type Streams struct {
	Out io.Writer // data output
	Err io.Writer // logs and usage
}

// runError marks a failure that happened after the arguments were accepted.
type runError struct {
	err error
}

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

// NewLogger builds the slog logger described by cfg. Logs never go to the
// data stream.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// checkConfig validates cfg once cobra has accepted the arguments, so an
// argument error is always reported with usage first.
func checkConfig(cfg config.Config) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		if err := cfg.Validate(); err != nil {
			return &runError{err: fmt.Errorf("invalid configuration: %w", err)}
		}
		return nil
	}
}

// execute runs cmd and maps its outcome to an exit code. Errors that are
// not runErrors come from cobra's argument handling and print usage.
func execute(ctx context.Context, cmd *cobra.Command, args []string, s Streams, log *slog.Logger) int {
	cmd.SetArgs(args)
	cmd.SetOut(s.Out)
	cmd.SetErr(s.Err)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var re *runError
	if errors.As(err, &re) {
		log.Error("run failed", "command", cmd.Name(), "error", re.err)
		return ExitError
	}
	fmt.Fprintf(s.Err, "Error: %v\n", err)
	fmt.Fprint(s.Err, cmd.UsageString())
	return ExitUsage
}
