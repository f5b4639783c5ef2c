package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meigma/dsarc"
)

type unpackOptions struct {
	outputDir    string
	skipExisting bool
	workers      int
}

func newUnpackCmd(root *rootOptions) *cobra.Command {
	opts := &unpackOptions{}
	cmd := &cobra.Command{
		Use:   "unpack FILE",
		Short: "Unpack a DSARC file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "output directory (default: the archive's directory)")
	cmd.Flags().BoolVar(&opts.skipExisting, "skip-existing", false, "keep files that already exist in the output directory")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "files written concurrently (0 = number of CPUs, -1 = serial)")
	return cmd
}

func runUnpack(cmd *cobra.Command, root *rootOptions, opts *unpackOptions, input string) error {
	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = filepath.Dir(input)
	}

	logger := root.logger(cmd.ErrOrStderr())
	arc, err := dsarc.Load(input, dsarc.WithLogger(logger))
	if err != nil {
		return err
	}

	stats, err := arc.Extract(cmd.Context(), outputDir,
		dsarc.ExtractWithOverwrite(!opts.skipExisting),
		dsarc.ExtractWithWorkers(opts.workers),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	// Counts header entries, duplicates and skipped files included.
	fmt.Fprintf(out, "Wrote %d files to %q.\n", arc.Len(), outputDir)
	if stats.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d existing files.\n", stats.Skipped)
	}
	return nil
}
