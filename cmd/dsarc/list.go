package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meigma/dsarc"
)

type listOptions struct {
	digest bool
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list FILE",
		Short: "List the entries of a DSARC file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.digest, "digest", false, "print the sha256 digest of each entry")
	return cmd
}

func runList(cmd *cobra.Command, root *rootOptions, opts *listOptions, input string) error {
	arc, err := dsarc.Load(input, dsarc.WithLogger(root.logger(cmd.ErrOrStderr())))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if opts.digest {
		fmt.Fprintln(tw, "FILENAME\tOFFSET\tSIZE\tDIGEST")
	} else {
		fmt.Fprintln(tw, "FILENAME\tOFFSET\tSIZE")
	}
	for _, info := range arc.Inspect() {
		if opts.digest {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", info.Filename, info.Offset, info.Size, info.Digest)
		} else {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", info.Filename, info.Offset, info.Size)
		}
	}
	return tw.Flush()
}
