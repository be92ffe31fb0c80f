// Package bootstrap wires the outbound adapters into the application
// services. Both the CLI and the MCP server build their pipelines here.
package bootstrap

import (
	"go.uber.org/zap"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/external"
	"github.com/repovalidate/repovalidate/internal/adapters/outbound/gitinfo"
	"github.com/repovalidate/repovalidate/internal/adapters/outbound/pystyle"
	"github.com/repovalidate/repovalidate/internal/adapters/outbound/scanner"
	"github.com/repovalidate/repovalidate/internal/adapters/outbound/yamlcheck"
	"github.com/repovalidate/repovalidate/internal/application"
	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/repovalidate/repovalidate/internal/domain/classify"
)

// Validators builds the classifier and the validator of every variant from
// cfg. The style variant is only registered when style checking is enabled;
// otherwise style files fall through to the default variant.
func Validators(cfg domain.Config) (*classify.Classifier, map[domain.Variant]domain.Validator) {
	runner := external.NewExecRunner(cfg.Timeout)

	validators := map[domain.Variant]domain.Validator{
		domain.VariantStructuredData: yamlcheck.New(cfg.Metadata.MandatoryKeys),
		domain.VariantShell:          external.NewShellcheck(runner, cfg.Shellcheck.Command, cfg.Shellcheck.Ignore),
		domain.VariantPHP:            external.NewPHPLint(runner, cfg.PHP.Command),
	}

	var style domain.StyleChecker
	if cfg.Style.Enabled {
		checker := pystyle.New(cfg.Style.MaxLineLength)
		style = checker
		validators[domain.VariantStyle] = pystyle.NewValidator(checker, cfg.Style.Ignore)
	}

	return classify.New(cfg.Extensions, style), validators
}

// NewDispatchService builds the validation pipeline for cfg.
func NewDispatchService(cfg domain.Config, reporter domain.ResultReporter, log *zap.SugaredLogger) *application.DispatchService {
	cls, validators := Validators(cfg)
	return application.NewDispatchService(cls, validators, reporter, application.DispatchOptions{
		DefaultVariant:        cfg.DefaultVariant,
		HaltOnMissingMetadata: cfg.Metadata.MissingIsFatal,
	}, log)
}

// NewTargetService builds target selection on the filesystem and git.
func NewTargetService(log *zap.SugaredLogger) *application.TargetService {
	return application.NewTargetService(scanner.New(), gitinfo.New(), log)
}
