package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "urltree",
		Short: "Parse, format, and compare route URLs",
		Long: `urltree works with route URLs: path segments with matrix
parameters, named outlets, query parameters, and a fragment.

  urltree parse '/team/33/(user/victor//support:help)?debug=true'
  urltree fmt '/a(zed:z//alpha:b)'
  urltree contains '/one/two' '/one'
  urltree serve --addr :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		parseCmd(),
		fmtCmd(),
		containsCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
