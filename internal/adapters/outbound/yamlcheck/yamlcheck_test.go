package yamlcheck_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/yamlcheck"
	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func validate(t *testing.T, content string) []domain.Outcome {
	t.Helper()
	p := writeFile(t, "config.yaml", content)
	outcomes, err := yamlcheck.New(domain.DefaultMandatoryKeys).Validate(context.Background(), p)
	require.NoError(t, err)
	return outcomes
}

func TestValidate_CompleteMetadataPasses(t *testing.T) {
	outcomes := validate(t, "metadata: {name: x, format: x, description: x, maintainer: x, os: x, devices: x}\n")
	require.Len(t, outcomes, 2)
	assert.Equal(t, domain.CheckYAMLValid, outcomes[0].Check)
	assert.Equal(t, domain.StatusPass, outcomes[0].Status)
	assert.Equal(t, domain.CheckMetadata, outcomes[1].Check)
	assert.Equal(t, domain.StatusPass, outcomes[1].Status)
}

func TestValidate_MissingKeysFail(t *testing.T) {
	outcomes := validate(t, "metadata: {name: x}\n")
	require.Len(t, outcomes, 2)

	md := outcomes[1]
	assert.Equal(t, domain.StatusFail, md.Status)
	assert.Equal(t, domain.KindMetadataIncomplete, md.Kind)
	require.Len(t, md.Diagnostics, 2)
	assert.Equal(t, "mandatory keys missing: format, description, maintainer, os, devices", md.Diagnostics[0])
	assert.Equal(t, "actual keys present: name", md.Diagnostics[1])
}

func TestValidate_EmptyKeyFails(t *testing.T) {
	outcomes := validate(t, "metadata: {name: x, format: x, description: '', maintainer: x, os: x, devices: x}\n")
	md := outcomes[1]
	assert.Equal(t, domain.StatusFail, md.Status)
	assert.Equal(t, []string{"description has no content"}, md.Diagnostics)
}

func TestValidate_MissingSection(t *testing.T) {
	outcomes := validate(t, "jobs: {}\n")
	md := outcomes[1]
	assert.Equal(t, domain.StatusFail, md.Status)
	assert.Equal(t, domain.KindMetadataMissing, md.Kind)
	assert.Equal(t, []string{"metadata section missing"}, md.Diagnostics)
}

func TestValidate_EmptyFileHasNoSection(t *testing.T) {
	outcomes := validate(t, "")
	require.Len(t, outcomes, 2)
	assert.Equal(t, domain.StatusPass, outcomes[0].Status)
	assert.Equal(t, domain.KindMetadataMissing, outcomes[1].Kind)
}

func TestValidate_ParseFailureSkipsMetadata(t *testing.T) {
	outcomes := validate(t, "key: [unclosed\n")
	require.Len(t, outcomes, 1, "metadata is only checked after a successful parse")
	assert.Equal(t, domain.CheckYAMLValid, outcomes[0].Check)
	assert.Equal(t, domain.StatusFail, outcomes[0].Status)
	assert.Equal(t, domain.KindParseFailure, outcomes[0].Kind)
	require.NotEmpty(t, outcomes[0].Diagnostics)
	assert.Contains(t, outcomes[0].Diagnostics[0], "yaml:")
}

func TestValidate_MultipleDocumentsFail(t *testing.T) {
	outcomes := validate(t, "a: 1\n---\nb: 2\n")
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.KindParseFailure, outcomes[0].Kind)
	assert.Contains(t, outcomes[0].Diagnostics[0], "single document")
}

func TestValidate_UnreadableFile(t *testing.T) {
	_, err := yamlcheck.New(domain.DefaultMandatoryKeys).Validate(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
