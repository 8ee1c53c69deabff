package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/mcphost/internal/config"
	"github.com/xdg/mcphost/internal/gateway"
	"github.com/xdg/mcphost/internal/pathutil"
	"github.com/xdg/mcphost/internal/term"
)

var targetsAllowlist string

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Inspect the make target allow-list",
	Long: `Inspect the allow-list of make targets that /make may run.

The allow-list is a JSON file of the form {"targets": ["build", "test"]}
(or the same shape in YAML when the file ends in .yaml or .yml). mcphost
never writes this file; edit it by hand.`,
}

var targetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List allowed targets",
	Args:  cobra.NoArgs,
	RunE:  runTargetsList,
}

var targetsCheckCmd = &cobra.Command{
	Use:   "check <target>",
	Short: "Check whether a target is allowed",
	Long: `Check whether a target is allowed, using the same exact, case-sensitive
comparison as the server. Exits 0 if allowed and 1 if not.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runTargetsCheck,
}

func init() {
	targetsCmd.PersistentFlags().StringVar(&targetsAllowlist, "allowlist", "", "allow-list file (overrides make.allowlist)")
	targetsCmd.AddCommand(targetsListCmd)
	targetsCmd.AddCommand(targetsCheckCmd)
	rootCmd.AddCommand(targetsCmd)
}

// allowlistPath resolves the allow-list location from the flag or config.
func allowlistPath() (string, error) {
	if targetsAllowlist != "" {
		return pathutil.ExpandHome(targetsAllowlist), nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.Make.Allowlist, nil
}

func runTargetsList(cmd *cobra.Command, args []string) error {
	path, err := allowlistPath()
	if err != nil {
		return err
	}

	targets, err := gateway.NewFileStore(path).Load()
	if err != nil {
		return err
	}

	term.List(fmt.Sprintf("Allowed targets (%s):", path), targets)
	return nil
}

func runTargetsCheck(cmd *cobra.Command, args []string) error {
	path, err := allowlistPath()
	if err != nil {
		return err
	}

	target := args[0]
	g := gateway.New(gateway.NewFileStore(path), nil)
	err = g.Check(target)
	switch {
	case err == nil:
		term.Printf("%s: allowed\n", target)
		return nil
	case errors.Is(err, gateway.ErrTargetNotAllowed):
		term.Printf("%s: not allowed\n", target)
		return NewExitCodeError(1)
	default:
		return err
	}
}
