package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/urltree"
)

func fmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt URL",
		Short: "Print the canonical form of a route URL",
		Long: `Parse a route URL and print its canonical serialization.

Named outlets are sorted, repeated matrix parameters are collapsed to
their last value, and every character outside its context's safe set
is percent-encoded.

Examples:
  urltree fmt '/a(zed:z//alpha:b)'
  urltree fmt '/one;k=%20'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := urltree.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tree.String())
			return nil
		},
	}
}
