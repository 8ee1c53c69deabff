package clog

import (
	"io"
	"log"
	"strings"
)

// Component is a named view of the global logger. Each subsystem declares
// one and logs through it, so every line names its origin.
type Component string

// Debug logs a debug message for the component.
func (c Component) Debug(format string, args ...any) {
	std.log(LevelDebug, string(c), format, args...)
}

// Info logs an informational message for the component.
func (c Component) Info(format string, args ...any) {
	std.log(LevelInfo, string(c), format, args...)
}

// Warn logs a warning message for the component.
func (c Component) Warn(format string, args ...any) {
	std.log(LevelWarn, string(c), format, args...)
}

// Error logs an error message for the component.
func (c Component) Error(format string, args ...any) {
	std.log(LevelError, string(c), format, args...)
}

// Enabled reports whether the global logger would write at level. Use it to
// skip building expensive debug messages.
func (c Component) Enabled(level Level) bool {
	return std.Enabled(level)
}

// Writer returns an io.Writer that logs each write as one message at level.
func (c Component) Writer(level Level) io.Writer {
	return &levelWriter{component: c, level: level}
}

// StdLogger returns a *log.Logger that writes through the component at the
// given level. Suitable for http.Server.ErrorLog.
func (c Component) StdLogger(level Level) *log.Logger {
	return log.New(c.Writer(level), "", 0)
}

type levelWriter struct {
	component Component
	level     Level
}

func (w *levelWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSuffix(string(p), "\n")
	std.log(w.level, string(w.component), "%s", msg)
	return len(p), nil
}
