package clog

import (
	"fmt"
	"os"
	"path/filepath"
)

// OpenLogFile opens a log file for appending, creating parent directories
// if needed.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// StateDir returns $XDG_STATE_HOME/mcphost, defaulting to
// ~/.local/state/mcphost.
func StateDir() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "mcphost")
}

// DefaultLogPath returns ~/.local/state/mcphost/mcphost.log.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "mcphost.log")
}

// AuditLogPath returns ~/.local/state/mcphost/audit.log.
func AuditLogPath() string {
	return filepath.Join(StateDir(), "audit.log")
}
