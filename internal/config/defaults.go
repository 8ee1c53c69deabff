package config

import "time"

// Default values applied to fields left empty in the configuration file.
const (
	DefaultListen          = "127.0.0.1:8000"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = "10s"
	DefaultTool            = "make"
	DefaultMakeTimeout     = "10m"
	DefaultLLMURL          = "http://localhost:11434/api/generate"
	DefaultLLMModel        = "llama3"
	DefaultLLMTimeout      = "60s"
	DefaultLogLevel        = "info"
)

// DefaultSearchExtensions are the extensions searched when a request omits exts.
var DefaultSearchExtensions = []string{"pdf", "svg", "txt", "jpg", "png"}

// DefaultConfig returns a Config with all defaults populated.
// Paths are left unexpanded.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          DefaultListen,
			MaxBodyBytes:    DefaultMaxBodyBytes,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Make: MakeConfig{
			Tool:      DefaultTool,
			Allowlist: DefaultAllowlistPath(),
			Timeout:   DefaultMakeTimeout,
		},
		LLM: LLMConfig{
			URL:          DefaultLLMURL,
			DefaultModel: DefaultLLMModel,
			Timeout:      DefaultLLMTimeout,
		},
		Search: SearchConfig{
			Extensions: append([]string(nil), DefaultSearchExtensions...),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// applyDefaults fills every empty field of cfg from DefaultConfig.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = def.Server.Listen
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if cfg.Server.ShutdownTimeout == "" {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Make.Tool == "" {
		cfg.Make.Tool = def.Make.Tool
	}
	if cfg.Make.Allowlist == "" {
		cfg.Make.Allowlist = def.Make.Allowlist
	}
	if cfg.Make.Timeout == "" {
		cfg.Make.Timeout = def.Make.Timeout
	}
	if cfg.LLM.URL == "" {
		cfg.LLM.URL = def.LLM.URL
	}
	if cfg.LLM.DefaultModel == "" {
		cfg.LLM.DefaultModel = def.LLM.DefaultModel
	}
	if cfg.LLM.Timeout == "" {
		cfg.LLM.Timeout = def.LLM.Timeout
	}
	if len(cfg.Search.Extensions) == 0 {
		cfg.Search.Extensions = def.Search.Extensions
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

// MakeTimeout returns make.timeout as a duration. Zero disables the deadline.
func (c *Config) MakeTimeout() time.Duration {
	return parseDurationOr(c.Make.Timeout, DefaultMakeTimeout)
}

// LLMTimeout returns llm.timeout as a duration.
func (c *Config) LLMTimeout() time.Duration {
	return parseDurationOr(c.LLM.Timeout, DefaultLLMTimeout)
}

// ShutdownTimeout returns server.shutdown_timeout as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDurationOr(c.Server.ShutdownTimeout, DefaultShutdownTimeout)
}

// parseDurationOr parses s, falling back to def when s is empty or invalid.
// Loaded configs are validated, so the fallback only covers hand-built values.
func parseDurationOr(s, def string) time.Duration {
	if s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(def)
	return d
}

// defaultConfigTemplate is written by WriteDefaultConfig. Every value is
// commented out so the built-in defaults stay authoritative.
const defaultConfigTemplate = `# mcphost configuration
#
# Every value below is the built-in default. Uncomment to override.

server:
  # Address for the HTTP listener. The /make endpoint runs local build
  # targets, so keep this on loopback unless the network is trusted.
  # listen: "127.0.0.1:8000"
  # Largest accepted request body in bytes.
  # max_body_bytes: 1048576
  # Grace period for in-flight requests on shutdown.
  # shutdown_timeout: "10s"

make:
  # Build tool executable, found via PATH.
  # tool: "make"
  # Allow-list of permitted targets, re-read on every request.
  # Format: {"targets": ["build", "test"]}
  # allowlist: "~/.config/mcphost/allowed_make_targets.json"
  # Builds running longer than this are killed. "0s" disables the deadline.
  # timeout: "10m"

llm:
  # Ollama generate endpoint.
  # url: "http://localhost:11434/api/generate"
  # default_model: "llama3"
  # timeout: "60s"

search:
  # Extensions searched when a request does not pass exts.
  # extensions: [pdf, svg, txt, jpg, png]

log:
  # Operational log file. Defaults to ~/.local/state/mcphost/mcphost.log
  # file: ""
  # One of: debug, info, warn, error
  # level: "info"
  # Audit log of make invocations. Defaults to ~/.local/state/mcphost/audit.log
  # audit: ""
`
