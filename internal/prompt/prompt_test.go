package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStdinYesNoPrompter(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "YES uppercase", input: "YES\n", want: true},
		{name: "n", input: "n\n", defaultYes: true, want: false},
		{name: "no with spaces", input: "  no  \n", defaultYes: true, want: false},
		{name: "empty uses default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty uses default no", input: "\n", defaultYes: false, want: false},
		{name: "eof without newline", input: "y", want: true},
		{name: "eof empty", input: "", defaultYes: true, want: true},
		{name: "invalid", input: "maybe\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewStdinYesNoPrompter(strings.NewReader(tt.input), &out)

			got, err := p.PromptYesNo("Overwrite?", tt.defaultYes)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("PromptYesNo() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PromptYesNo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStdinYesNoPrompter_DisplaysHint(t *testing.T) {
	var out bytes.Buffer
	p := NewStdinYesNoPrompter(strings.NewReader("\n"), &out)

	_, _ = p.PromptYesNo("Overwrite config?", false)

	if got := out.String(); got != "Overwrite config? [y/N] " {
		t.Errorf("prompt output = %q", got)
	}
}

func TestMockYesNoPrompter(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockYesNoPrompter(true, false)
	m.Errors = []error{nil, nil, boom}

	if got, _ := m.PromptYesNo("first", false); !got {
		t.Error("first call should return true")
	}
	if got, _ := m.PromptYesNo("second", true); got {
		t.Error("second call should return false")
	}
	if _, err := m.PromptYesNo("third", true); !errors.Is(err, boom) {
		t.Errorf("third call error = %v, want boom", err)
	}
	if got, _ := m.PromptYesNo("fourth", true); !got {
		t.Error("exhausted mock should return the default")
	}
	if len(m.Calls) != 4 || m.Calls[0] != "first" {
		t.Errorf("Calls = %q", m.Calls)
	}
}

func TestIsInteractive_NonTerminal(t *testing.T) {
	if IsInteractive(nil) {
		t.Error("nil file should not be interactive")
	}
}
