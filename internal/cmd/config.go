package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdg/mcphost/internal/config"
	"github.com/xdg/mcphost/internal/prompt"
	"github.com/xdg/mcphost/internal/term"
)

var configInitForce bool

// isInteractive reports whether config init may prompt. Overridden in tests.
var isInteractive = func() bool { return prompt.IsInteractive(os.Stdin) }

// yesNoPrompter confirms overwrites in config init. Overridden in tests.
var yesNoPrompter prompt.YesNoPrompter = prompt.NewStdinYesNoPrompter(os.Stdin, os.Stdout)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage mcphost's configuration.

The configuration file is stored at ~/.config/mcphost/config.yaml
(or $XDG_CONFIG_HOME/mcphost/config.yaml if XDG_CONFIG_HOME is set).`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective config",
	Long: `Print the effective configuration as YAML.

If no config file exists, shows the default configuration.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file path",
	Args:  cobra.NoArgs,
	Run:   runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	Long: `Create the default configuration file if it doesn't exist.

This creates a fully-commented configuration file with all default values.
With --force an existing file is replaced; on a terminal you are asked to
confirm first.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := config.MarshalConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	term.Print(string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) {
	term.Println(config.ConfigPath())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigPath()

	if !config.ConfigExists() {
		if err := config.WriteDefaultConfig(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		term.Printf("Created default config at: %s\n", path)
		return nil
	}

	if !configInitForce {
		term.Printf("Config already exists at: %s (use --force to overwrite)\n", path)
		return nil
	}

	if isInteractive() {
		ok, err := yesNoPrompter.PromptYesNo(fmt.Sprintf("Overwrite %s?", path), false)
		if err != nil {
			return err
		}
		if !ok {
			term.Println("Aborted")
			return nil
		}
	}

	if err := config.OverwriteDefaultConfig(); err != nil {
		return fmt.Errorf("failed to overwrite config: %w", err)
	}
	term.Printf("Replaced config at: %s\n", path)
	return nil
}
