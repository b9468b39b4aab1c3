package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/shelters/internal/config"
	"github.com/dgallion1/shelters/internal/extract"
	"github.com/dgallion1/shelters/internal/parser"
)

// NewHTMLDataCmd returns the command that prints every text node of an
// HTML file.
func NewHTMLDataCmd(cfg config.Config, log *slog.Logger) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "htmldata -f <path>",
		Short: "Print the text nodes of an HTML file",
		Long: `Reads an HTML file and prints each run of character data found between
tags, one line per run, in document order.`,
		Args:    cobra.NoArgs,
		PreRunE: checkConfig(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := extract.NewExtractor(&parser.HTMLTokenizer{}, cmd.OutOrStdout(), log, extract.Options{
				Encoding:      cfg.InputEncoding,
				MaxInputBytes: cfg.MaxInputBytes,
			})
			if err := e.Run(cmd.Context(), file); err != nil {
				return &runError{err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "The file to process")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// RunHTMLData executes the htmldata command with args and returns the
// process exit code.
func RunHTMLData(ctx context.Context, args []string, s Streams) int {
	cfg := config.Load()
	log := NewLogger(cfg, s.Err)
	return execute(ctx, NewHTMLDataCmd(cfg, log), args, s, log)
}
