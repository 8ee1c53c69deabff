// Package term provides user-facing terminal output for the mcphost CLI.
// This is distinct from operational logging (see internal/clog).
//
// Print, Printf and Println write to stdout and are suppressed by --silent.
// Warn and Error write to stderr and are never suppressed.
package term

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	silent bool
)

// SetSilent enables or disables silent mode.
func SetSilent(s bool) {
	mu.Lock()
	defer mu.Unlock()
	silent = s
}

// SetOutput sets the writer for stdout output.
// Pass nil to use os.Stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	stdout = w
}

// SetErrOutput sets the writer for stderr output.
// Pass nil to use os.Stderr.
func SetErrOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	stderr = w
}

// out runs fn against stdout unless silent mode is on.
func out(fn func(io.Writer)) {
	mu.Lock()
	defer mu.Unlock()
	if silent {
		return
	}
	fn(stdout)
}

// Print formats and writes to stdout.
func Print(a ...any) {
	out(func(w io.Writer) { _, _ = fmt.Fprint(w, a...) })
}

// Printf formats according to a format specifier and writes to stdout.
func Printf(format string, a ...any) {
	out(func(w io.Writer) { _, _ = fmt.Fprintf(w, format, a...) })
}

// Println formats and writes to stdout with a trailing newline.
func Println(a ...any) {
	out(func(w io.Writer) { _, _ = fmt.Fprintln(w, a...) })
}

// List writes each item on its own line, indented, under a header.
// An empty list prints the header followed by "  (none)".
func List(header string, items []string) {
	out(func(w io.Writer) {
		_, _ = fmt.Fprintln(w, header)
		if len(items) == 0 {
			_, _ = fmt.Fprintln(w, "  (none)")
			return
		}
		for _, item := range items {
			_, _ = fmt.Fprintf(w, "  %s\n", item)
		}
	})
}

// Warn writes a warning message to stderr with "Warning: " prefix.
func Warn(format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(stderr, "Warning: %s\n", fmt.Sprintf(format, a...))
}

// Error writes an error message to stderr with "Error: " prefix.
func Error(format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(stderr, "Error: %s\n", fmt.Sprintf(format, a...))
}

// Reset restores the default writers and turns silent mode off.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	stdout = os.Stdout
	stderr = os.Stderr
	silent = false
}
