package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/xdg/mcphost/internal/prompt"
	"github.com/xdg/mcphost/internal/term"
	"github.com/xdg/mcphost/internal/testutil"
)

// setupConfigEnv isolates XDG dirs, captures term output and restores the
// prompt hooks.
func setupConfigEnv(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var out bytes.Buffer
	term.SetOutput(&out)
	t.Cleanup(term.Reset)

	origInteractive, origPrompter, origForce := isInteractive, yesNoPrompter, configInitForce
	t.Cleanup(func() {
		isInteractive, yesNoPrompter, configInitForce = origInteractive, origPrompter, origForce
	})

	return filepath.Join(configHome, "mcphost", "config.yaml"), &out
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	expected := map[string]bool{"show": false, "path": false, "init": false}
	for _, cmd := range configCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("missing subcommand: %s", name)
		}
	}
}

func TestConfigPath_PrintsPath(t *testing.T) {
	path, out := setupConfigEnv(t)

	runConfigPath(&cobra.Command{}, nil)

	if out.String() != path+"\n" {
		t.Errorf("output = %q, want %q", out.String(), path+"\n")
	}
}

func TestConfigInit_CreatesFile(t *testing.T) {
	path, out := setupConfigEnv(t)

	if err := runConfigInit(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("config file should not be empty")
	}
	if !strings.Contains(out.String(), "Created default config") {
		t.Errorf("output = %q", out.String())
	}
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	path, out := setupConfigEnv(t)
	testutil.WriteFile(t, path, "server:\n  listen: 127.0.0.1:9000\n")

	if err := runConfigInit(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}

	if got := readFile(t, path); !strings.Contains(got, "9000") {
		t.Errorf("existing config was modified: %q", got)
	}
	if !strings.Contains(out.String(), "--force") {
		t.Errorf("output = %q, want hint about --force", out.String())
	}
}

func TestConfigInit_Force(t *testing.T) {
	tests := []struct {
		name        string
		interactive bool
		answer      bool
		wantReplace bool
		wantPrompts int
	}{
		{"non-interactive overwrites", false, false, true, 0},
		{"interactive confirmed", true, true, true, 1},
		{"interactive declined", true, false, false, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, _ := setupConfigEnv(t)
			testutil.WriteFile(t, path, "server:\n  listen: 127.0.0.1:9000\n")

			mock := prompt.NewMockYesNoPrompter(tc.answer)
			yesNoPrompter = mock
			isInteractive = func() bool { return tc.interactive }
			configInitForce = true

			if err := runConfigInit(&cobra.Command{}, nil); err != nil {
				t.Fatalf("runConfigInit() error = %v", err)
			}

			replaced := !strings.Contains(readFile(t, path), "9000")
			if replaced != tc.wantReplace {
				t.Errorf("replaced = %v, want %v", replaced, tc.wantReplace)
			}
			if len(mock.Calls) != tc.wantPrompts {
				t.Errorf("prompts = %d, want %d", len(mock.Calls), tc.wantPrompts)
			}
		})
	}
}

func TestConfigShow_PrintsEffectiveConfig(t *testing.T) {
	path, out := setupConfigEnv(t)
	testutil.WriteFile(t, path, "make:\n  tool: gmake\n")

	if err := runConfigShow(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runConfigShow() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"tool: gmake", "127.0.0.1:8000", "default_model: llama3"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, got)
		}
	}
}

func TestConfigShow_RejectsUnknownField(t *testing.T) {
	path, _ := setupConfigEnv(t)
	testutil.WriteFile(t, path, "make:\n  tools: gmake\n")

	if err := runConfigShow(&cobra.Command{}, nil); err == nil {
		t.Error("runConfigShow() should fail for unknown field")
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
