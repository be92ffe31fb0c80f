package domain_test

import (
	"errors"
	"testing"

	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewTargetResult_AllPass(t *testing.T) {
	r := domain.NewTargetResult("a.yaml", domain.VariantStructuredData, []domain.Outcome{
		domain.Pass(domain.CheckYAMLValid, "a.yaml"),
		domain.Pass(domain.CheckMetadata, "a.yaml"),
	})
	assert.Equal(t, domain.StatusPass, r.Status)
	assert.Equal(t, 0, r.ExitCode())
}

func TestNewTargetResult_AnyFailFailsTarget(t *testing.T) {
	r := domain.NewTargetResult("a.yaml", domain.VariantStructuredData, []domain.Outcome{
		domain.Pass(domain.CheckYAMLValid, "a.yaml"),
		domain.Fail(domain.CheckMetadata, "a.yaml", domain.KindMetadataIncomplete, "format has no content"),
	})
	assert.Equal(t, domain.StatusFail, r.Status)
	assert.Equal(t, 1, r.ExitCode(), "a target contributes at most 1 even with several failed checks")
}

func TestNewTargetResult_NoOutcomesPasses(t *testing.T) {
	r := domain.NewTargetResult("README", domain.VariantSkip, nil)
	assert.Equal(t, domain.StatusPass, r.Status)
}

func TestRunSummary_AggregateCountsFailingTargets(t *testing.T) {
	s := &domain.RunSummary{Mode: domain.ModeTree}
	s.Add(domain.NewTargetResult("a.sh", domain.VariantShell, []domain.Outcome{domain.Pass(domain.CheckShellcheck, "a.sh")}))
	s.Add(domain.NewTargetResult("b.sh", domain.VariantShell, []domain.Outcome{domain.Fail(domain.CheckShellcheck, "b.sh", domain.KindExternalToolFailure)}))
	s.Add(domain.NewTargetResult("c.sh", domain.VariantShell, []domain.Outcome{domain.Fail(domain.CheckShellcheck, "c.sh", domain.KindExternalToolFailure)}))

	assert.Equal(t, 3, s.Targets)
	assert.Equal(t, 2, s.Failures)
	assert.Equal(t, 2, s.ExitCode)
	assert.False(t, s.Passed())
}

func TestRunSummary_EmptyPasses(t *testing.T) {
	s := &domain.RunSummary{}
	assert.True(t, s.Passed())
	assert.Equal(t, 0, s.ExitCode)
}

func TestCheckFor(t *testing.T) {
	assert.Equal(t, "YAMLVALID", domain.CheckFor(domain.VariantStructuredData))
	assert.Equal(t, "PEP8", domain.CheckFor(domain.VariantStyle))
	assert.Equal(t, "PHPLINT", domain.CheckFor(domain.VariantPHP))
	assert.Equal(t, "SHELLCHECK", domain.CheckFor(domain.VariantShell))
	assert.Equal(t, "DISPATCH", domain.CheckFor(domain.VariantOther))
}

func TestClampExitCode(t *testing.T) {
	assert.Equal(t, 0, domain.ClampExitCode(0))
	assert.Equal(t, 3, domain.ClampExitCode(3))
	assert.Equal(t, 255, domain.ClampExitCode(256))
	assert.Equal(t, 255, domain.ClampExitCode(10_000))
}

func TestHaltError_Unwraps(t *testing.T) {
	err := &domain.HaltError{Path: "x.yaml", Err: domain.ErrMetadataMissing}
	assert.True(t, errors.Is(err, domain.ErrMetadataMissing))
	assert.Contains(t, err.Error(), "x.yaml")
}
