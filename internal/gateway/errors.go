package gateway

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Gateway.Run. Callers branch with errors.Is.
var (
	// ErrInvalidPath indicates the requested directory is empty, missing,
	// or not a directory. Nothing was loaded or spawned.
	ErrInvalidPath = errors.New("invalid path")

	// ErrTargetNotAllowed indicates the target is not on the allow-list.
	ErrTargetNotAllowed = errors.New("target not allowed")

	// ErrConfigUnavailable indicates the allow-list artifact could not be read.
	ErrConfigUnavailable = errors.New("allow-list unavailable")

	// ErrConfigMalformed indicates the allow-list artifact could not be
	// decoded into a mapping with a "targets" sequence of strings.
	ErrConfigMalformed = errors.New("allow-list malformed")

	// ErrSpawnFailed indicates the build tool could not be started.
	ErrSpawnFailed = errors.New("failed to start build tool")

	// ErrTimeout indicates the child was killed because its deadline passed
	// or the caller went away.
	ErrTimeout = errors.New("build timed out")
)

// TargetNotAllowedError names the rejected target. It matches
// ErrTargetNotAllowed under errors.Is.
type TargetNotAllowedError struct {
	Target string
}

func (e *TargetNotAllowedError) Error() string {
	return fmt.Sprintf("target %q not allowed", e.Target)
}

// Is reports whether target is ErrTargetNotAllowed.
func (e *TargetNotAllowedError) Is(target error) bool {
	return target == ErrTargetNotAllowed
}
