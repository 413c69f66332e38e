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
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "markup: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "markup",
		Short: "Render JSON and YAML trees to HTML",
		Long: `markup renders trees of strings, numbers, arrays and nodes to HTML.

A node is a mapping with an optional tag (false renders only the content),
optional attrs and optional content:

  {"tag": "a", "attrs": {"href": "/"}, "content": ["Home"]}`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		renderCmd(),
		optionsCmd(),
		serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "markup %s (%s)\n", version, commit)
		},
	}
}
