// Package cmd implements the CLI commands for mcphost.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/mcphost/internal/term"
	"github.com/xdg/mcphost/internal/version"
)

var silent bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcphost",
	Short: "Local search, LLM and guarded make backend",
	Long: `mcphost serves a small local HTTP API:

  GET  /search  find files by name fragment and extension
  POST /llm     forward a prompt to a local Ollama server
  POST /make    run an allow-listed make target in a directory

Only targets listed in the allow-list file can be run, and make is always
invoked directly with the target as its single argument, never via a shell.`,
	Version:       version.String(),
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		term.SetSilent(silent)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "suppress informational output")
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}
