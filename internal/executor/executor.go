// Package executor runs host commands by direct argument-vector execution.
// Commands are never passed through a shell.
package executor

import (
	"context"
	"time"
)

// Executor executes commands on the host system.
type Executor interface {
	Execute(ctx context.Context, req ExecuteRequest) ExecuteResponse
}

// ExecuteRequest contains the command execution parameters.
type ExecuteRequest struct {
	// Command is resolved through the host's executable search path.
	Command string
	Args    []string
	Workdir string
	// Timeout bounds the run. Zero means the run is bounded only by ctx.
	Timeout time.Duration
}

// ExecuteResponse contains the result of command execution.
type ExecuteResponse struct {
	Status   string // "completed", "timeout", "error"
	ExitCode int
	Stdout   string
	Stderr   string
	Error    string
}

// Status constants for ExecuteResponse.Status.
const (
	StatusCompleted = "completed"
	StatusTimeout   = "timeout"
	StatusError     = "error"
)
