// Package config provides configuration types for mcphost. These types map
// to a single YAML file, by default ~/.config/mcphost/config.yaml.
package config

// Config represents the top-level mcphost configuration.
type Config struct {
	Server ServerConfig `yaml:"server,omitempty"`
	Make   MakeConfig   `yaml:"make,omitempty"`
	LLM    LLMConfig    `yaml:"llm,omitempty"`
	Search SearchConfig `yaml:"search,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Listen          string `yaml:"listen,omitempty"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes,omitempty"`
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`
}

// MakeConfig contains settings for the guarded build-tool endpoint.
type MakeConfig struct {
	// Tool is the build tool executable, resolved through PATH.
	Tool string `yaml:"tool,omitempty"`
	// Allowlist is the path of the JSON (or YAML) allow-list artifact.
	Allowlist string `yaml:"allowlist,omitempty"`
	// Timeout bounds a single build. "0s" disables the deadline.
	Timeout string `yaml:"timeout,omitempty"`
}

// LLMConfig contains settings for the Ollama proxy endpoint.
type LLMConfig struct {
	URL          string `yaml:"url,omitempty"`
	DefaultModel string `yaml:"default_model,omitempty"`
	Timeout      string `yaml:"timeout,omitempty"`
}

// SearchConfig contains settings for the file search endpoint.
type SearchConfig struct {
	// Extensions are used when a request does not supply exts.
	Extensions []string `yaml:"extensions,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
	Audit string `yaml:"audit,omitempty"`
}
