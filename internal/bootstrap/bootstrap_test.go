package bootstrap_test

import (
	"testing"

	"github.com/repovalidate/repovalidate/internal/bootstrap"
	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/repovalidate/repovalidate/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestValidators_Defaults(t *testing.T) {
	cls, validators := bootstrap.Validators(domain.DefaultConfig())

	assert.True(t, cls.StyleEnabled())
	for _, v := range []domain.Variant{
		domain.VariantStructuredData,
		domain.VariantStyle,
		domain.VariantShell,
		domain.VariantPHP,
	} {
		assert.Contains(t, validators, v)
	}
	assert.Equal(t, domain.VariantStyle, cls.Classify("tool.py"))
}

func TestValidators_StyleDisabled(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Style.Enabled = false

	cls, validators := bootstrap.Validators(cfg)
	assert.False(t, cls.StyleEnabled())
	assert.NotContains(t, validators, domain.VariantStyle)
	assert.Equal(t, domain.VariantOther, cls.Classify("tool.py"))
}

func TestValidators_ExclusionsDoNotChangeClassification(t *testing.T) {
	paths := []string{"devices/router.yaml", "scripts/deploy.py", "web/index.php", "scripts/setup.sh", "Makefile", "notes.YAML"}

	base := domain.DefaultConfig()
	want := bootstrap.NewDispatchService(base, nil, logger.Nop()).Classify(paths)

	tests := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{"no style ignores", func(c *domain.Config) { c.Style.Ignore = nil }},
		{"many style ignores", func(c *domain.Config) { c.Style.Ignore = []string{"E1", "E2", "E3", "W", "N8"} }},
		{"shellcheck ignores", func(c *domain.Config) { c.Shellcheck.Ignore = []string{"SC2086", "SC1090"} }},
		{"exclude paths", func(c *domain.Config) { c.ExcludePaths = []string{"scripts/**", "*.php"} }},
		{"all exclusions", func(c *domain.Config) {
			c.Style.Ignore = []string{"E501", "W291"}
			c.Shellcheck.Ignore = []string{"SC2034"}
			c.ExcludePaths = []string{"**"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)

			cls, _ := bootstrap.Validators(cfg)
			for i, p := range paths {
				assert.Equal(t, want[i].Variant, cls.Classify(p), p)
			}
			assert.Equal(t, want, bootstrap.NewDispatchService(cfg, nil, logger.Nop()).Classify(paths))
		})
	}
}
