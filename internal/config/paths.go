package config

import (
	"fmt"
	"os"

	"github.com/xdg/mcphost/internal/pathutil"
)

// Dir returns the mcphost configuration directory path.
// By default, this is ~/.config/mcphost/. If the XDG_CONFIG_HOME
// environment variable is set, it uses $XDG_CONFIG_HOME/mcphost/ instead.
// The returned path always has a trailing slash.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return pathutil.ExpandHome(base) + "/mcphost/"
}

// EnsureDir creates the configuration directory if it doesn't exist,
// with user-only permissions.
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() string {
	return Dir() + "config.yaml"
}

// DefaultAllowlistPath returns the default location of the make allow-list.
func DefaultAllowlistPath() string {
	return Dir() + "allowed_make_targets.json"
}
