package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/urltree"
)

// JSON shapes for the parse command and the serve endpoints.
type segmentJSON struct {
	Path       string            `json:"path"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

type groupJSON struct {
	Segments []segmentJSON        `json:"segments"`
	Children map[string]groupJSON `json:"children,omitempty"`
}

type treeJSON struct {
	Root        groupJSON           `json:"root"`
	QueryParams map[string][]string `json:"queryParams,omitempty"`
	Fragment    *string             `json:"fragment,omitempty"`
	Canonical   string              `json:"canonical"`
}

func treeToJSON(tree *urltree.Tree) treeJSON {
	out := treeJSON{
		Root:      groupToJSON(tree.Root),
		Canonical: tree.String(),
		Fragment:  tree.Fragment,
	}
	if tree.QueryParams.Len() > 0 {
		out.QueryParams = tree.QueryParams.Map()
	}
	return out
}

func groupToJSON(group *urltree.SegmentGroup) groupJSON {
	out := groupJSON{Segments: make([]segmentJSON, 0, len(group.Segments))}
	for _, seg := range group.Segments {
		s := segmentJSON{Path: seg.Path}
		if seg.Parameters.Len() > 0 {
			s.Parameters = seg.Parameters.Map()
		}
		out.Segments = append(out.Segments, s)
	}
	if group.HasChildren() {
		out.Children = make(map[string]groupJSON, len(group.Children))
		for outlet, child := range group.Children {
			out.Children[outlet] = groupToJSON(child)
		}
	}
	return out
}

func parseCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "parse URL",
		Short: "Parse a route URL and print its tree as JSON",
		Long: `Parse a route URL into its segment-group tree and print it as JSON.

Examples:
  urltree parse '/inbox/33;open=true/messages/44'
  urltree parse '/team/33/(user/victor//support:help)?debug=true#frag'
  urltree parse --compact '/one/two'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := urltree.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse %q: %w", args[0], err)
			}

			var (
				data []byte
				merr error
			)
			if compact {
				data, merr = json.Marshal(treeToJSON(tree))
			} else {
				data, merr = json.MarshalIndent(treeToJSON(tree), "", "  ")
			}
			if merr != nil {
				return merr
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "Print compact JSON")

	return cmd
}
