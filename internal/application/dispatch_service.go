package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/repovalidate/repovalidate/internal/domain"
)

// DispatchOptions holds the routing policy of a DispatchService.
type DispatchOptions struct {
	// DefaultVariant handles files the classifier does not recognize.
	DefaultVariant domain.Variant
	// HaltOnMissingMetadata stops the run at the first structured-data file
	// without a metadata section.
	HaltOnMissingMetadata bool
}

// DispatchService runs the pipeline classify -> validate -> report -> fold
// over a target set.
type DispatchService struct {
	classifier domain.Classifier
	validators map[domain.Variant]domain.Validator
	reporter   domain.ResultReporter
	opts       DispatchOptions
	log        *zap.SugaredLogger
}

func NewDispatchService(
	classifier domain.Classifier,
	validators map[domain.Variant]domain.Validator,
	reporter domain.ResultReporter,
	opts DispatchOptions,
	log *zap.SugaredLogger,
) *DispatchService {
	if opts.DefaultVariant == "" {
		opts.DefaultVariant = domain.VariantShell
	}
	return &DispatchService{
		classifier: classifier,
		validators: validators,
		reporter:   reporter,
		opts:       opts,
		log:        log,
	}
}

// Route classifies path and resolves unknown files to the default variant.
func (s *DispatchService) Route(path string) domain.Classification {
	v := s.classifier.Classify(path)
	route := v
	if v == domain.VariantOther {
		route = s.opts.DefaultVariant
	}
	return domain.Classification{Path: path, Variant: v, Route: route}
}

// Classify routes every path without validating anything.
func (s *DispatchService) Classify(paths []string) []domain.Classification {
	out := make([]domain.Classification, 0, len(paths))
	for _, p := range paths {
		out = append(out, s.Route(p))
	}
	return out
}

// Run validates every target in order and folds the results. Failures never
// stop the loop; only a *domain.HaltError, a reporting error, or context
// cancellation does, and the partial summary is returned alongside the error.
func (s *DispatchService) Run(ctx context.Context, set TargetSet) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		Mode:       set.Mode,
		CommitHash: set.CommitHash,
		Results:    []domain.TargetResult{},
	}

	for _, path := range set.Paths {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run cancelled: %w", err)
		}

		result, err := s.ValidateTarget(ctx, path)
		if err != nil && ctx.Err() != nil {
			return summary, err
		}
		summary.Add(result)
		if err != nil {
			var halt *domain.HaltError
			if errors.As(err, &halt) {
				summary.Halted = true
				s.log.Warnw("run halted", "path", path, "reason", halt.Err)
			}
			return summary, err
		}
	}

	s.log.Infow("run complete", "mode", summary.Mode, "targets", summary.Targets, "failures", summary.Failures)
	return summary, nil
}

// ValidateTarget runs one target through the pipeline and reports every
// outcome. A returned *domain.HaltError means the run must stop; the
// target's result is still valid. Outcomes of a cancelled context are
// dropped unreported.
func (s *DispatchService) ValidateTarget(ctx context.Context, path string) (domain.TargetResult, error) {
	c := s.Route(path)
	s.log.Debugw("classified", "path", path, "variant", c.Variant, "route", c.Route)

	if c.Route == domain.VariantSkip {
		s.reporter.Skipped(path)
		return domain.NewTargetResult(path, c.Route, nil), nil
	}

	outcomes := s.validate(ctx, c)
	if err := ctx.Err(); err != nil {
		return domain.TargetResult{Path: path, Variant: c.Route}, fmt.Errorf("run cancelled: %w", err)
	}

	var halt error
	for _, o := range outcomes {
		if !o.Failed() {
			s.reporter.Passed(o)
			continue
		}
		if err := s.reporter.Failed(o); err != nil {
			return domain.NewTargetResult(path, c.Route, outcomes), fmt.Errorf("reporting %s: %w", path, err)
		}
		if o.Kind == domain.KindMetadataMissing && s.opts.HaltOnMissingMetadata {
			halt = &domain.HaltError{Path: path, Err: domain.ErrMetadataMissing}
		}
	}

	return domain.NewTargetResult(path, c.Route, outcomes), halt
}

func (s *DispatchService) validate(ctx context.Context, c domain.Classification) []domain.Outcome {
	v, ok := s.validators[c.Route]
	if !ok {
		return []domain.Outcome{domain.Fail(domain.CheckDispatch, c.Path, domain.KindValidatorError,
			fmt.Sprintf("no validator available for variant %q", c.Route))}
	}

	outcomes, err := v.Validate(ctx, c.Path)
	if err != nil {
		s.log.Debugw("validator error", "path", c.Path, "variant", c.Route, "error", err)
		return []domain.Outcome{domain.Fail(domain.CheckFor(c.Route), c.Path, domain.KindValidatorError, err.Error())}
	}
	if len(outcomes) == 0 {
		return []domain.Outcome{domain.Pass(domain.CheckFor(c.Route), c.Path)}
	}
	return outcomes
}
