// Package version provides version information for mcphost.
// The variables are set at build time via ldflags.
package version

// Version is the current version of mcphost.
// Set at build time via: -ldflags "-X github.com/xdg/mcphost/internal/version.Version=v1.0.0"
// Defaults to "dev" for development builds.
var Version = "dev"

// Commit is the VCS revision the binary was built from, if known.
var Commit = ""

// String returns the version, with the commit appended when set.
func String() string {
	if Commit == "" {
		return Version
	}
	short := Commit
	if len(short) > 12 {
		short = short[:12]
	}
	return Version + " (" + short + ")"
}
