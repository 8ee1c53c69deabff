package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/xdg/mcphost/internal/clog"
	"github.com/xdg/mcphost/internal/pathutil"
)

var logger = clog.Component("config")

// LoadConfig loads the configuration from ConfigPath.
// If the file doesn't exist, a commented default file is written and
// DefaultConfig is returned. If the file exists but cannot be read, parsed,
// or validated, it returns an error. Empty fields are filled from defaults
// and paths containing ~ are expanded.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigPath())
}

// LoadConfigFrom loads the configuration from path. Unlike LoadConfig it
// never writes a default file.
func LoadConfigFrom(path string) (*Config, error) {
	logger.Debug("loading config from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("%s not found, using defaults", path)
			if path == ConfigPath() {
				if writeErr := WriteDefaultConfig(); writeErr != nil {
					logger.Warn("failed to create default config: %v", writeErr)
				}
			}
			cfg := DefaultConfig()
			expandPaths(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyDefaults(cfg)
	expandPaths(cfg)
	return cfg, nil
}

// expandPaths expands ~ to the home directory in all path fields.
func expandPaths(cfg *Config) {
	cfg.Make.Allowlist = pathutil.ExpandHome(cfg.Make.Allowlist)
	cfg.Log.File = pathutil.ExpandHome(cfg.Log.File)
	cfg.Log.Audit = pathutil.ExpandHome(cfg.Log.Audit)
}
