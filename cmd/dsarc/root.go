package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "dsarc",
		Short: "Unpack NIS DSARC FL archives (Disgaea 6)",
		Long: `dsarc reads DSARC FL archives and extracts the files they contain.

Supported operations:
  - List the entries of an archive
  - Unpack every entry into a directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every entry while loading")

	cmd.AddCommand(newUnpackCmd(opts), newListCmd(opts))
	return cmd
}

// logger returns a text logger on w, at debug level when verbose is set.
func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
