package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSummary_JSONShape(t *testing.T) {
	s := &domain.RunSummary{Mode: domain.ModeGitLatest, CommitHash: "abc123"}
	s.Add(domain.NewTargetResult("a.sh", domain.VariantShell, []domain.Outcome{
		domain.Fail(domain.CheckShellcheck, "a.sh", domain.KindExternalToolFailure, "SC2086"),
	}))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "git-latest", decoded["mode"])
	assert.Equal(t, "abc123", decoded["commit_hash"])
	assert.EqualValues(t, 1, decoded["failures"])
	assert.EqualValues(t, 1, decoded["exit_code"])
	assert.NotContains(t, decoded, "halted", "halted is omitted when false")

	results := decoded["results"].([]any)
	require.Len(t, results, 1)
	outcome := results[0].(map[string]any)["outcomes"].([]any)[0].(map[string]any)
	assert.Equal(t, "external_tool_failure", outcome["kind"])
	assert.Equal(t, []any{"SC2086"}, outcome["diagnostics"])
}

func TestRunSummary_ExitCodeOnlyGrows(t *testing.T) {
	s := &domain.RunSummary{}
	fail := domain.NewTargetResult("x", domain.VariantPHP, []domain.Outcome{
		domain.Fail(domain.CheckPHPLint, "x", domain.KindExternalToolFailure),
	})
	pass := domain.NewTargetResult("y", domain.VariantPHP, []domain.Outcome{domain.Pass(domain.CheckPHPLint, "y")})

	s.Add(fail)
	s.Add(pass)
	s.Add(fail)
	assert.Equal(t, 2, s.ExitCode)
	assert.Equal(t, 3, s.Targets)
	assert.False(t, s.Passed())
}
