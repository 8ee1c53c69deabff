package term

import (
	"bytes"
	"testing"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out)
	SetErrOutput(&errOut)
	t.Cleanup(Reset)
	return &out, &errOut
}

func TestPrintFunctions(t *testing.T) {
	out, _ := capture(t)

	Print("a", "b")
	Printf(" %d", 1)
	Println(" done")

	if got, want := out.String(), "ab 1 done\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestWarnAndError(t *testing.T) {
	_, errOut := capture(t)

	Warn("allow-list %s", "missing")
	Error("exit %d", 2)

	want := "Warning: allow-list missing\nError: exit 2\n"
	if got := errOut.String(); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestSilentMode(t *testing.T) {
	out, errOut := capture(t)
	SetSilent(true)

	Println("hidden")
	List("Targets:", []string{"build"})
	Warn("shown")

	if out.Len() != 0 {
		t.Errorf("stdout should be empty in silent mode, got %q", out.String())
	}
	if errOut.String() != "Warning: shown\n" {
		t.Errorf("warnings must survive silent mode, got %q", errOut.String())
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "items", items: []string{"build", "test"}, want: "Targets:\n  build\n  test\n"},
		{name: "empty", items: nil, want: "Targets:\n  (none)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := capture(t)
			List("Targets:", tt.items)
			if out.String() != tt.want {
				t.Errorf("List() wrote %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestSetOutput_Nil(t *testing.T) {
	t.Cleanup(Reset)
	SetOutput(nil)
	SetErrOutput(nil)
	// Should not panic.
	Print("")
}
