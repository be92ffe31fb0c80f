package domain

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2

	// MaxExitCode caps the aggregate so a large failure count never wraps
	// around to a passing status.
	MaxExitCode = 255
)

// ErrMetadataMissing marks a structured-data file without a metadata section.
var ErrMetadataMissing = errors.New("metadata section missing")

// HaltError reports that a target aborted the whole run.
type HaltError struct {
	Path string
	Err  error
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("run halted at %s: %v", e.Path, e.Err)
}

func (e *HaltError) Unwrap() error { return e.Err }

// ClampExitCode maps an aggregate failure count to a process exit code.
func ClampExitCode(aggregate int) int {
	switch {
	case aggregate <= 0:
		return ExitSuccess
	case aggregate > MaxExitCode:
		return MaxExitCode
	default:
		return aggregate
	}
}
