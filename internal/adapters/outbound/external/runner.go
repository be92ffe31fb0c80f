package external

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ExecRunner implements domain.CommandRunner with os/exec. A zero timeout
// leaves invocations unbounded.
type ExecRunner struct {
	timeout time.Duration
}

func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Run executes name with args and returns combined stdout and stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return out, 0, nil
	}

	// A killed process also surfaces as *exec.ExitError, so check the
	// context first.
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return out, -1, fmt.Errorf("%s timed out after %s", name, r.timeout)
		}
		return out, -1, fmt.Errorf("%s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, exitErr.ExitCode(), nil
	}
	return out, -1, fmt.Errorf("running %s: %w", name, err)
}
