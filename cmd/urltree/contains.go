package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/urltree"
)

func containsCmd() *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "contains CONTAINER CONTAINEE",
		Short: "Check whether one route URL contains another",
		Long: `Parse both route URLs and report whether the first contains the
second. Containment compares segment paths only; with --exact it also
compares matrix and query parameters and requires identical shape.

Examples:
  urltree contains '/one/two' '/one'
  urltree contains --exact '/one;a=1' '/one;a=1'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := urltree.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse container %q: %w", args[0], err)
			}
			containee, err := urltree.Parse(args[1])
			if err != nil {
				return fmt.Errorf("parse containee %q: %w", args[1], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), urltree.ContainsTree(container, containee, exact))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&exact, "exact", "e", false, "Require an exact match")

	return cmd
}
