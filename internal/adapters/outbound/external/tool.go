package external

import (
	"context"
	"strings"

	"github.com/repovalidate/repovalidate/internal/domain"
)

// ToolValidator implements domain.Validator by delegating to a command-line
// checker. The tool's exit status is trusted as-is: zero passes, anything
// else fails with the captured output as diagnostics.
type ToolValidator struct {
	check  string
	name   string
	args   []string
	runner domain.CommandRunner
}

// NewShellcheck builds the shell-script validator. Ignored codes are passed
// as a single comma-separated -e flag.
func NewShellcheck(runner domain.CommandRunner, command string, ignore []string) *ToolValidator {
	name, args := splitCommand(command)
	args = append(args, ExclusionArgs(ignore)...)
	return &ToolValidator{check: domain.CheckShellcheck, name: name, args: args, runner: runner}
}

// NewPHPLint builds the PHP syntax validator ("php -l <file>").
func NewPHPLint(runner domain.CommandRunner, command string) *ToolValidator {
	name, args := splitCommand(command)
	args = append(args, "-l")
	return &ToolValidator{check: domain.CheckPHPLint, name: name, args: args, runner: runner}
}

// ExclusionArgs formats shellcheck exclusions. Blank codes are dropped; an
// empty set yields no flag at all.
func ExclusionArgs(ignore []string) []string {
	var codes []string
	for _, c := range ignore {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return []string{"-e", strings.Join(codes, ",")}
}

// CommandLine returns the full argv used for path.
func (v *ToolValidator) CommandLine(path string) []string {
	argv := make([]string, 0, len(v.args)+2)
	argv = append(argv, v.name)
	argv = append(argv, v.args...)
	return append(argv, path)
}

func (v *ToolValidator) Validate(ctx context.Context, path string) ([]domain.Outcome, error) {
	argv := v.CommandLine(path)
	out, code, err := v.runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		diags := append(splitLines(out), err.Error())
		return []domain.Outcome{domain.Fail(v.check, path, domain.KindExternalToolFailure, diags...)}, nil
	}
	if code == 0 {
		return []domain.Outcome{domain.Pass(v.check, path)}, nil
	}
	return []domain.Outcome{domain.Fail(v.check, path, domain.KindExternalToolFailure, splitLines(out)...)}, nil
}

func splitCommand(command string) (string, []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

func splitLines(out []byte) []string {
	text := strings.TrimRight(string(out), "\r\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
