package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store provides the set of permitted build targets.
type Store interface {
	// Load returns the permitted target names in file order.
	Load() ([]string, error)
}

// FileStore reads the allow-list from disk on every Load so operators can
// change permitted targets without restarting the service.
//
// The artifact is JSON of the form {"targets": ["build", "test"]}. Paths
// ending in .yaml or .yml are decoded as YAML with the same shape.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads and parses the allow-list file. A missing or unreadable file
// yields ErrConfigUnavailable; undecodable content yields ErrConfigMalformed.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}

	var targets []string
	if isYAMLPath(s.Path) {
		targets, err = ParseYAML(data)
	} else {
		targets, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return targets, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ParseJSON decodes a JSON allow-list document.
func ParseJSON(data []byte) ([]string, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigMalformed, err)
	}
	return targetsFrom(doc)
}

// ParseYAML decodes a YAML allow-list document.
func ParseYAML(data []byte) ([]string, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigMalformed, err)
	}
	return targetsFrom(doc)
}

// targetsFrom extracts the "targets" sequence. A document without the key
// permits nothing; a null document or any non-string entry is malformed.
func targetsFrom(doc map[string]any) ([]string, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is not a mapping", ErrConfigMalformed)
	}

	raw, ok := doc["targets"]
	if !ok {
		return []string{}, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: \"targets\" must be a sequence, got %T", ErrConfigMalformed, raw)
	}

	targets := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: targets[%d] must be a string, got %T", ErrConfigMalformed, i, item)
		}
		targets = append(targets, s)
	}
	return targets, nil
}

// StaticStore is an in-memory allow-list.
type StaticStore []string

// Load returns a copy of the configured targets.
func (s StaticStore) Load() ([]string, error) {
	return slices.Clone([]string(s)), nil
}

// isAllowed reports whether target is an exact, case-sensitive member of allowed.
func isAllowed(allowed []string, target string) bool {
	return slices.Contains(allowed, target)
}
