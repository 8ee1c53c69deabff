package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xdg/mcphost/internal/clog"
)

// ValidateConfig validates a parsed Config, checking that all non-empty
// fields contain valid values. It validates:
//   - server.listen is ":port" or "host:port" with port 1-65535
//   - server.max_body_bytes is non-negative
//   - duration strings parse and are non-negative
//   - make.tool is a bare executable name or path, never a command line
//   - llm.url is an absolute http(s) URL
//   - search.extensions entries are non-empty
//   - log.level is one of: debug, info, warn, error
//
// Returns nil if the config is valid, or an error naming the invalid field.
func ValidateConfig(cfg *Config) error {
	if cfg.Server.Listen != "" {
		if err := validateListenAddr(cfg.Server.Listen, "server.listen"); err != nil {
			return err
		}
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes: must be non-negative, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Server.ShutdownTimeout != "" {
		if err := validateDuration(cfg.Server.ShutdownTimeout, "server.shutdown_timeout"); err != nil {
			return err
		}
	}

	if cfg.Make.Tool != "" && strings.ContainsAny(cfg.Make.Tool, " \t\n;|&$`") {
		return fmt.Errorf("make.tool: %q must be a single executable, not a command line", cfg.Make.Tool)
	}
	if cfg.Make.Timeout != "" {
		if err := validateDuration(cfg.Make.Timeout, "make.timeout"); err != nil {
			return err
		}
	}

	if cfg.LLM.URL != "" {
		if err := validateHTTPURL(cfg.LLM.URL, "llm.url"); err != nil {
			return err
		}
	}
	if cfg.LLM.Timeout != "" {
		if err := validateDuration(cfg.LLM.Timeout, "llm.timeout"); err != nil {
			return err
		}
	}

	for i, ext := range cfg.Search.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("search.extensions[%d]: must not be empty", i)
		}
	}

	if cfg.Log.Level != "" {
		if _, ok := clog.LookupLevel(cfg.Log.Level); !ok {
			return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
		}
	}

	return nil
}

// validateListenAddr validates a listen address in the format ":port" or "host:port".
// Port must be in the range 1-65535.
func validateListenAddr(addr, field string) error {
	colonIdx := strings.LastIndex(addr, ":")
	if colonIdx == -1 {
		return fmt.Errorf("%s: invalid format %q, expected host:port or :port", field, addr)
	}

	portStr := addr[colonIdx+1:]
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("%s: invalid port %q in %q", field, portStr, addr)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s: invalid port number %d, must be 1-65535", field, port)
	}

	return nil
}

// validateDuration validates that a duration string parses and is not negative.
func validateDuration(d, field string) error {
	parsed, err := time.ParseDuration(d)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q", field, d)
	}
	if parsed < 0 {
		return fmt.Errorf("%s: must be non-negative, got %q", field, d)
	}
	return nil
}

// validateHTTPURL validates an absolute http or https URL.
func validateHTTPURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid URL %q: %v", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host in %q", field, raw)
	}
	return nil
}
