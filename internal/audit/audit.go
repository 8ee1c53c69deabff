// Package audit provides structured logging for make invocations.
// Log entries follow a key=value format suitable for parsing and analysis.
package audit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// EventType represents the type of gateway event.
type EventType string

// Event types for make invocations.
const (
	EventRequest  EventType = "REQUEST"
	EventDeny     EventType = "DENY"
	EventComplete EventType = "COMPLETE"
	EventTimeout  EventType = "TIMEOUT"
	EventError    EventType = "ERROR"
)

// Event represents a single audit log entry.
type Event struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Type is the event type (REQUEST, DENY, etc.)
	Type EventType

	// Dir is the requested working directory.
	Dir string

	// Target is the requested build target.
	Target string

	// Reason explains DENY and ERROR events.
	Reason string

	// ExitCode is the child exit code (for COMPLETE events).
	ExitCode int

	// Duration is the execution time (for COMPLETE and TIMEOUT events).
	Duration time.Duration
}

// Format returns the log entry as a formatted string.
// Format: 2024-01-15T14:32:05Z MAKE REQUEST dir="/src/app" target="build"
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" MAKE ")
	b.WriteString(string(e.Type))
	b.WriteString(" dir=")
	b.WriteString(quoteValue(e.Dir))
	b.WriteString(" target=")
	b.WriteString(quoteValue(e.Target))

	switch e.Type {
	case EventDeny, EventError:
		writeOptionalField(&b, "reason", e.Reason)
	case EventComplete:
		b.WriteString(" exit=")
		b.WriteString(strconv.Itoa(e.ExitCode))
		b.WriteString(" duration=")
		b.WriteString(formatDuration(e.Duration))
	case EventTimeout:
		b.WriteString(" duration=")
		b.WriteString(formatDuration(e.Duration))
	}

	return b.String()
}

// writeOptionalField appends " key=quoted_value" to the builder if value is non-empty.
func writeOptionalField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(quoteValue(value))
}

// quoteValue quotes every value so spaces and control characters in
// caller-supplied paths cannot forge extra fields.
func quoteValue(s string) string {
	return strconv.Quote(s)
}

// formatDuration formats a duration as a human-readable string (e.g., "2.3s", "1m30s").
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// Logger writes audit events to an io.Writer.
// A nil *Logger is valid and discards everything.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger creates a new audit logger that writes to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Log writes an event to the audit log.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := e.Format() + "\n"
	_, err := l.w.Write([]byte(line))
	if err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// LogRequest logs a REQUEST event.
func (l *Logger) LogRequest(dir, target string) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventRequest,
		Dir:       dir,
		Target:    target,
	})
}

// LogDeny logs a DENY event.
func (l *Logger) LogDeny(dir, target, reason string) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventDeny,
		Dir:       dir,
		Target:    target,
		Reason:    reason,
	})
}

// LogComplete logs a COMPLETE event.
func (l *Logger) LogComplete(dir, target string, exitCode int, duration time.Duration) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventComplete,
		Dir:       dir,
		Target:    target,
		ExitCode:  exitCode,
		Duration:  duration,
	})
}

// LogTimeout logs a TIMEOUT event.
func (l *Logger) LogTimeout(dir, target string, duration time.Duration) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventTimeout,
		Dir:       dir,
		Target:    target,
		Duration:  duration,
	})
}

// LogError logs an ERROR event.
func (l *Logger) LogError(dir, target, reason string) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventError,
		Dir:       dir,
		Target:    target,
		Reason:    reason,
	})
}

// OpenFile opens the audit log for appending, creating parent directories
// if needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return f, nil
}
