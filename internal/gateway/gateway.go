// Package gateway mediates between untrusted build requests and the local
// build tool. A request names a directory and a target; the gateway checks
// the directory, checks the target against an allow-list, and only then runs
// the tool with the argument vector [tool, target] in that directory.
//
// The target is the only variable argument ever handed to the child, and the
// child is always started by argument vector, never through a shell.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xdg/mcphost/internal/audit"
	"github.com/xdg/mcphost/internal/clog"
	"github.com/xdg/mcphost/internal/executor"
)

var logger = clog.Component("gateway")

// DefaultTool is the build tool invoked when none is configured.
const DefaultTool = "make"

// DefaultTimeout bounds a single build when no timeout is configured.
const DefaultTimeout = 10 * time.Minute

// Request is a caller-supplied build request.
type Request struct {
	Path   string `json:"path"`
	Target string `json:"target"`
}

// Result is the captured outcome of a build. A non-zero ReturnCode is a
// failed build, not a failed request.
type Result struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ReturnCode int    `json:"returncode"`
}

// Gateway runs allow-listed build targets.
type Gateway struct {
	// Tool is the executable name, resolved via the search path.
	Tool string

	// Store supplies the allow-list. It is consulted on every Run.
	Store Store

	// Executor starts the child process.
	Executor executor.Executor

	// Timeout bounds each build. Zero disables the deadline, leaving only
	// caller cancellation.
	Timeout time.Duration

	// AuditLogger records every decision. If nil, no audit logging is performed.
	AuditLogger *audit.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTool overrides DefaultTool.
func WithTool(tool string) Option {
	return func(g *Gateway) {
		g.Tool = tool
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.Timeout = d
	}
}

// WithAuditLogger enables audit logging.
func WithAuditLogger(l *audit.Logger) Option {
	return func(g *Gateway) {
		g.AuditLogger = l
	}
}

// New creates a Gateway reading its allow-list from store and spawning
// children through exec.
func New(store Store, exec executor.Executor, opts ...Option) *Gateway {
	g := &Gateway{
		Tool:     DefaultTool,
		Store:    store,
		Executor: exec,
		Timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run validates req and, if it passes, runs the build to completion.
//
// The checks happen in a fixed order: directory first, then allow-list.
// A bad directory returns ErrInvalidPath without loading the allow-list.
// An unlisted target returns a *TargetNotAllowedError without spawning.
//
// When the build is killed because ctx ended or the timeout passed, Run
// returns ErrTimeout together with a Result holding whatever output was
// captured before the kill.
func (g *Gateway) Run(ctx context.Context, req Request) (*Result, error) {
	dir, err := ValidateDir(req.Path)
	if err != nil {
		logger.Debug("rejecting path %q: %v", req.Path, err)
		_ = g.AuditLogger.LogDeny(req.Path, req.Target, "invalid path")
		return nil, err
	}

	_ = g.AuditLogger.LogRequest(dir, req.Target)

	if err := g.checkTarget(req.Target); err != nil {
		return nil, g.deny(dir, req.Target, err)
	}

	if g.Executor == nil {
		_ = g.AuditLogger.LogError(dir, req.Target, "command execution not configured")
		return nil, fmt.Errorf("%w: command execution not configured", ErrSpawnFailed)
	}

	start := time.Now()
	resp := g.Executor.Execute(ctx, executor.ExecuteRequest{
		Command: g.Tool,
		Args:    []string{req.Target},
		Workdir: dir,
		Timeout: g.Timeout,
	})
	elapsed := time.Since(start)

	result := &Result{
		Stdout:     resp.Stdout,
		Stderr:     resp.Stderr,
		ReturnCode: resp.ExitCode,
	}

	switch resp.Status {
	case executor.StatusCompleted:
		logger.Info("%s %s in %s exited %d after %s", g.Tool, req.Target, dir, resp.ExitCode, elapsed)
		_ = g.AuditLogger.LogComplete(dir, req.Target, resp.ExitCode, elapsed)
		return result, nil

	case executor.StatusTimeout:
		logger.Warn("%s %s in %s killed after %s: %s", g.Tool, req.Target, dir, elapsed, resp.Error)
		_ = g.AuditLogger.LogTimeout(dir, req.Target, elapsed)
		return result, fmt.Errorf("%w: %s", ErrTimeout, resp.Error)

	case executor.StatusError:
		logger.Error("%s %s in %s failed to start: %s", g.Tool, req.Target, dir, resp.Error)
		_ = g.AuditLogger.LogError(dir, req.Target, resp.Error)
		return nil, fmt.Errorf("%w: %s", ErrSpawnFailed, resp.Error)

	default:
		_ = g.AuditLogger.LogError(dir, req.Target, "unknown executor status: "+resp.Status)
		return nil, fmt.Errorf("%w: unknown executor status %q", ErrSpawnFailed, resp.Status)
	}
}

// checkTarget loads the allow-list and tests membership.
func (g *Gateway) checkTarget(target string) error {
	if g.Store == nil {
		return fmt.Errorf("%w: no allow-list configured", ErrConfigUnavailable)
	}
	allowed, err := g.Store.Load()
	if err != nil {
		return err
	}
	if !isAllowed(allowed, target) {
		return &TargetNotAllowedError{Target: target}
	}
	return nil
}

// deny records a refused request and returns err unchanged.
func (g *Gateway) deny(dir, target string, err error) error {
	if errors.Is(err, ErrTargetNotAllowed) {
		logger.Info("target %q not allowed", target)
		_ = g.AuditLogger.LogDeny(dir, target, "target not allowed")
		return err
	}
	logger.Error("cannot load allow-list: %v", err)
	_ = g.AuditLogger.LogError(dir, target, err.Error())
	return err
}

// Check reports whether target would pass the allow-list, without running
// anything. It returns nil, a *TargetNotAllowedError, or a load error.
func (g *Gateway) Check(target string) error {
	return g.checkTarget(target)
}

// Allowed returns the current allow-list.
func (g *Gateway) Allowed() ([]string, error) {
	if g.Store == nil {
		return nil, fmt.Errorf("%w: no allow-list configured", ErrConfigUnavailable)
	}
	return g.Store.Load()
}
