package external_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/external"
	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the last invocation and replays a canned result.
type fakeRunner struct {
	name   string
	args   []string
	output string
	code   int
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, int, error) {
	f.name = name
	f.args = args
	return []byte(f.output), f.code, f.err
}

func TestExclusionArgs(t *testing.T) {
	assert.Nil(t, external.ExclusionArgs(nil))
	assert.Nil(t, external.ExclusionArgs([]string{"", "  "}))
	assert.Equal(t, []string{"-e", "SC2086"}, external.ExclusionArgs([]string{"SC2086"}))
	assert.Equal(t, []string{"-e", "SC2086,SC1090"}, external.ExclusionArgs([]string{"SC2086", " SC1090 "}))
}

func TestShellcheck_CommandLine(t *testing.T) {
	v := external.NewShellcheck(&fakeRunner{}, "shellcheck", []string{"SC2086", "SC1090"})
	assert.Equal(t, []string{"shellcheck", "-e", "SC2086,SC1090", "deploy.sh"}, v.CommandLine("deploy.sh"))

	v = external.NewShellcheck(&fakeRunner{}, "shellcheck", nil)
	assert.Equal(t, []string{"shellcheck", "deploy.sh"}, v.CommandLine("deploy.sh"))
}

func TestShellcheck_CommandWithArguments(t *testing.T) {
	v := external.NewShellcheck(&fakeRunner{}, "shellcheck --norc", nil)
	assert.Equal(t, []string{"shellcheck", "--norc", "x"}, v.CommandLine("x"))
}

func TestPHPLint_CommandLine(t *testing.T) {
	v := external.NewPHPLint(&fakeRunner{}, "php")
	assert.Equal(t, []string{"php", "-l", "index.php"}, v.CommandLine("index.php"))
}

func TestToolValidator_Pass(t *testing.T) {
	r := &fakeRunner{output: "No syntax errors detected in index.php\n"}
	outcomes, err := external.NewPHPLint(r, "php").Validate(context.Background(), "index.php")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusPass, outcomes[0].Status)
	assert.Equal(t, domain.CheckPHPLint, outcomes[0].Check)
	assert.Empty(t, outcomes[0].Diagnostics)
	assert.Equal(t, "php", r.name)
	assert.Equal(t, []string{"-l", "index.php"}, r.args)
}

func TestToolValidator_FailKeepsOutputVerbatim(t *testing.T) {
	output := "\nIn deploy.sh line 3:\necho $foo\n     ^--^ SC2086: Double quote to prevent globbing.\n"
	r := &fakeRunner{output: output, code: 1}
	outcomes, err := external.NewShellcheck(r, "shellcheck", nil).Validate(context.Background(), "deploy.sh")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	o := outcomes[0]
	assert.Equal(t, domain.StatusFail, o.Status)
	assert.Equal(t, domain.KindExternalToolFailure, o.Kind)
	assert.Equal(t, []string{
		"",
		"In deploy.sh line 3:",
		"echo $foo",
		"     ^--^ SC2086: Double quote to prevent globbing.",
	}, o.Diagnostics)
}

func TestToolValidator_StartFailureIsFail(t *testing.T) {
	r := &fakeRunner{code: -1, err: errors.New("running shellcheck: executable file not found in $PATH")}
	outcomes, err := external.NewShellcheck(r, "shellcheck", nil).Validate(context.Background(), "a.sh")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.StatusFail, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Diagnostics[len(outcomes[0].Diagnostics)-1], "executable file not found")
}

func TestToolValidator_CancelledContextIsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &fakeRunner{code: -1, err: errors.New("shellcheck: context canceled")}

	outcomes, err := external.NewShellcheck(r, "shellcheck", nil).Validate(ctx, "a.sh")
	require.Error(t, err)
	assert.Empty(t, outcomes)
}

func TestExecRunner_CapturesCombinedOutputAndStatus(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out, code, err := external.NewExecRunner(0).Run(context.Background(), "sh", "-c", "echo out; echo err 1>&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, string(out), "out")
	assert.Contains(t, string(out), "err")
}

func TestExecRunner_Success(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, code, err := external.NewExecRunner(0).Run(context.Background(), "sh", "-c", "exit 0")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, _, err := external.NewExecRunner(0).Run(context.Background(), "definitely-not-a-real-checker-binary")
	assert.Error(t, err)
}

func TestExecRunner_Timeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	_, _, err := external.NewExecRunner(50*time.Millisecond).Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
