package clog

import (
	"io"
	"os"
)

// std is the global logger instance used by package-level functions.
var std = NewLogger()

// Options configures the global logger.
type Options struct {
	// File is the log file path. Empty disables file logging.
	File string
	// Level is the minimum level written.
	Level Level
	// Daemon disables the stderr mirror of warnings and errors.
	Daemon bool
}

// Configure sets up the global logger. On error the level and daemon mode
// are still applied and stderr output continues.
func Configure(opts Options) error {
	std.SetLevel(opts.Level)
	std.SetDaemonMode(opts.Daemon)

	if opts.File == "" {
		return nil
	}
	f, err := OpenLogFile(opts.File)
	if err != nil {
		return err
	}
	std.SetFileOutput(f)
	return nil
}

// Debug logs a debug message to the global logger.
func Debug(format string, args ...any) {
	std.Debug(format, args...)
}

// Info logs an informational message to the global logger.
func Info(format string, args ...any) {
	std.Info(format, args...)
}

// Warn logs a warning message to the global logger.
func Warn(format string, args ...any) {
	std.Warn(format, args...)
}

// Error logs an error message to the global logger.
func Error(format string, args ...any) {
	std.Error(format, args...)
}

// Close closes the file writer if it implements io.Closer.
func Close() error {
	std.mu.Lock()
	defer std.mu.Unlock()

	if closer, ok := std.fileWriter.(io.Closer); ok {
		std.fileWriter = nil
		return closer.Close()
	}
	return nil
}

// Reset resets the global logger to default state.
func Reset() {
	std = NewLogger()
}

// Discard silences the global logger. Used by tests.
func Discard() {
	std.SetFileOutput(io.Discard)
	std.SetErrOutput(io.Discard)
}

// ReplaceGlobal replaces the global logger and returns the previous one.
// Caller should restore the original logger after the test.
func ReplaceGlobal(l *Logger) *Logger {
	old := std
	std = l
	return old
}

func init() {
	// Only stderr until Configure is called.
	std.SetErrOutput(os.Stderr)
}
