package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// DefaultWaitDelay is how long Execute waits for output pipes to close after
// the process group has been killed.
const DefaultWaitDelay = 2 * time.Second

// RealExecutor executes commands using os/exec.
type RealExecutor struct {
	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

// NewRealExecutor creates a new RealExecutor.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

// Execute runs a command to completion and returns its captured output.
// The child gets an empty stdin and runs in its own process group; when ctx
// is done or the timeout expires the whole group is killed.
func (e *RealExecutor) Execute(ctx context.Context, req ExecuteRequest) ExecuteResponse {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, req.Command, req.Args...) //nolint:gosec // G204: argv execution, no shell
	if req.Workdir != "" {
		cmd.Dir = req.Workdir
	}

	// A nil Stdin reads from the null device.
	cmd.Stdin = nil

	configureProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}
	cmd.WaitDelay = DefaultWaitDelay
	if e.WaitDelay > 0 {
		cmd.WaitDelay = e.WaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return ExecuteResponse{
			Status:   StatusCompleted,
			ExitCode: 0,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		msg := "command timed out"
		if errors.Is(ctxErr, context.Canceled) {
			msg = "command canceled"
		}
		return ExecuteResponse{
			Status:   StatusTimeout,
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Error:    msg,
		}
	}

	// The child exited but something it left behind still holds the output
	// pipes. The build itself finished, so report its own exit status.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil {
		return ExecuteResponse{
			Status:   StatusCompleted,
			ExitCode: cmd.ProcessState.ExitCode(),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return ExecuteResponse{
			Status:   StatusError,
			ExitCode: -1,
			Error:    "executable not found: " + req.Command,
		}
	}

	// The command ran but returned non-zero.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExecuteResponse{
			Status:   StatusCompleted,
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
	}

	// Permission denied, bad working directory, and similar start failures.
	return ExecuteResponse{
		Status:   StatusError,
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Error:    err.Error(),
	}
}
