// Package main is the entry point for the mcphost CLI.
package main

import (
	"errors"
	"os"

	"github.com/xdg/mcphost/internal/cmd"
	"github.com/xdg/mcphost/internal/term"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		term.Error("%v", err)
		os.Exit(1)
	}
}
