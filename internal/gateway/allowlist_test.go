package gateway

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func TestFileStore_Load(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []string
		wantErr error
	}{
		{
			name:    "json targets",
			file:    "allowed_make_targets.json",
			content: `{"targets": ["build", "test"]}`,
			want:    []string{"build", "test"},
		},
		{
			name:    "json duplicates preserved in order",
			file:    "allowed.json",
			content: `{"targets": ["test", "build", "test"]}`,
			want:    []string{"test", "build", "test"},
		},
		{
			name:    "json extra fields ignored",
			file:    "allowed.json",
			content: `{"targets": ["build"], "comment": "ops managed"}`,
			want:    []string{"build"},
		},
		{
			name:    "json missing targets permits nothing",
			file:    "allowed.json",
			content: `{}`,
			want:    []string{},
		},
		{
			name:    "json empty targets",
			file:    "allowed.json",
			content: `{"targets": []}`,
			want:    []string{},
		},
		{
			name:    "json not an object",
			file:    "allowed.json",
			content: `["build"]`,
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "json null document",
			file:    "allowed.json",
			content: `null`,
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "json targets not a list",
			file:    "allowed.json",
			content: `{"targets": "build"}`,
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "json targets null",
			file:    "allowed.json",
			content: `{"targets": null}`,
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "json non-string entry",
			file:    "allowed.json",
			content: `{"targets": ["build", 7]}`,
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "json syntax error",
			file:    "allowed.json",
			content: `{"targets": [`,
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "json empty file",
			file:    "allowed.json",
			content: ``,
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "yaml targets",
			file:    "allowed.yaml",
			content: "targets:\n  - build\n  - test\n",
			want:    []string{"build", "test"},
		},
		{
			name:    "yml flow sequence",
			file:    "allowed.yml",
			content: "targets: [lint]\n",
			want:    []string{"lint"},
		},
		{
			name:    "yaml non-string entry",
			file:    "allowed.yaml",
			content: "targets:\n  - 42\n",
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "yaml sequence document",
			file:    "allowed.yaml",
			content: "- build\n",
			wantErr: ErrConfigMalformed,
		},
		{
			name:    "yaml empty file",
			file:    "allowed.yaml",
			content: "",
			wantErr: ErrConfigMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			got, err := NewFileStore(path).Load()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load()
	if !errors.Is(err, ErrConfigUnavailable) {
		t.Fatalf("Load() error = %v, want ErrConfigUnavailable", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error should wrap os.ErrNotExist, got %v", err)
	}
}

// TestFileStore_ReloadsEveryCall verifies edits are visible without
// constructing a new store.
func TestFileStore_ReloadsEveryCall(t *testing.T) {
	path := writeFile(t, t.TempDir(), "allowed.json", `{"targets": ["build"]}`)
	store := NewFileStore(path)

	first, err := store.Load()
	if err != nil {
		t.Fatalf("first Load(): %v", err)
	}
	if !slices.Equal(first, []string{"build"}) {
		t.Fatalf("first Load() = %q", first)
	}

	if err := os.WriteFile(path, []byte(`{"targets": ["build", "test"]}`), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	second, err := store.Load()
	if err != nil {
		t.Fatalf("second Load(): %v", err)
	}
	if !slices.Equal(second, []string{"build", "test"}) {
		t.Errorf("second Load() = %q, want updated list", second)
	}
}

func TestStaticStore_ReturnsCopy(t *testing.T) {
	store := StaticStore{"build", "test"}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	got[0] = "mutated"

	again, _ := store.Load()
	if again[0] != "build" {
		t.Errorf("StaticStore was mutated through Load result: %q", again)
	}
}

func TestIsAllowed_ExactMatch(t *testing.T) {
	allowed := []string{"build", "test"}

	tests := []struct {
		target string
		want   bool
	}{
		{"build", true},
		{"test", true},
		{"Build", false},
		{"build ", false},
		{" build", false},
		{"buil", false},
		{"build*", false},
		{"*", false},
		{"", false},
		{"build;rm -rf /", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := isAllowed(allowed, tt.target); got != tt.want {
				t.Errorf("isAllowed(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
