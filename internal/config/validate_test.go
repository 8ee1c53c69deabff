package config

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero config", cfg: Config{}},
		{name: "defaults", cfg: *DefaultConfig()},
		{name: "listen port only", cfg: Config{Server: ServerConfig{Listen: ":8000"}}},
		{name: "listen missing port", cfg: Config{Server: ServerConfig{Listen: "localhost"}}, wantErr: "server.listen"},
		{name: "listen port out of range", cfg: Config{Server: ServerConfig{Listen: ":70000"}}, wantErr: "server.listen"},
		{name: "negative body size", cfg: Config{Server: ServerConfig{MaxBodyBytes: -1}}, wantErr: "server.max_body_bytes"},
		{name: "bad shutdown timeout", cfg: Config{Server: ServerConfig{ShutdownTimeout: "x"}}, wantErr: "server.shutdown_timeout"},
		{name: "tool with arguments", cfg: Config{Make: MakeConfig{Tool: "make -j8"}}, wantErr: "make.tool"},
		{name: "tool with shell operator", cfg: Config{Make: MakeConfig{Tool: "make;id"}}, wantErr: "make.tool"},
		{name: "tool absolute path", cfg: Config{Make: MakeConfig{Tool: "/usr/bin/gmake"}}},
		{name: "negative make timeout", cfg: Config{Make: MakeConfig{Timeout: "-1s"}}, wantErr: "make.timeout"},
		{name: "zero make timeout", cfg: Config{Make: MakeConfig{Timeout: "0s"}}},
		{name: "llm url without scheme", cfg: Config{LLM: LLMConfig{URL: "localhost:11434"}}, wantErr: "llm.url"},
		{name: "llm url ftp", cfg: Config{LLM: LLMConfig{URL: "ftp://host/api"}}, wantErr: "llm.url"},
		{name: "llm bad timeout", cfg: Config{LLM: LLMConfig{Timeout: "1 minute"}}, wantErr: "llm.timeout"},
		{name: "blank extension", cfg: Config{Search: SearchConfig{Extensions: []string{"txt", " "}}}, wantErr: "search.extensions[1]"},
		{name: "log level", cfg: Config{Log: LogConfig{Level: "warn"}}},
		{name: "bad log level", cfg: Config{Log: LogConfig{Level: "verbose"}}, wantErr: "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateConfig() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateConfig() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
