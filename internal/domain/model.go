package domain

// Variant identifies which validator handles a target.
type Variant string

const (
	VariantStructuredData Variant = "structured-data"
	VariantStyle          Variant = "style"
	VariantPHP            Variant = "php"
	VariantShell          Variant = "shell"

	// VariantOther is the classifier's answer for files no rule recognizes.
	// The dispatcher routes it to the configured default variant.
	VariantOther Variant = "other"

	// VariantSkip is only valid as a default variant: the target is reported
	// as skipped and counts as passing.
	VariantSkip Variant = "skip"
)

// Status is the pass/fail result of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// FailureKind classifies why a check failed.
type FailureKind string

const (
	KindParseFailure        FailureKind = "parse_failure"
	KindMetadataMissing     FailureKind = "metadata_missing"
	KindMetadataIncomplete  FailureKind = "metadata_incomplete"
	KindExternalToolFailure FailureKind = "external_tool_failure"
	KindStyleViolation      FailureKind = "style_violation"
	KindValidatorError      FailureKind = "validator_error"
)

// Check labels used in the live log and the failure report.
const (
	CheckYAMLValid  = "YAMLVALID"
	CheckMetadata   = "METADATA"
	CheckPEP8       = "PEP8"
	CheckShellcheck = "SHELLCHECK"
	CheckPHPLint    = "PHPLINT"
	CheckDispatch   = "DISPATCH"
)

// CheckFor returns the report label of the validator behind a variant.
func CheckFor(v Variant) string {
	switch v {
	case VariantStructuredData:
		return CheckYAMLValid
	case VariantStyle:
		return CheckPEP8
	case VariantPHP:
		return CheckPHPLint
	case VariantShell:
		return CheckShellcheck
	default:
		return CheckDispatch
	}
}

// Outcome is the result of one check against one target. A validator may
// produce several outcomes for the same target (parse, then metadata).
type Outcome struct {
	Check       string      `json:"check"`
	Path        string      `json:"path"`
	Status      Status      `json:"status"`
	Kind        FailureKind `json:"kind,omitempty"`
	Diagnostics []string    `json:"diagnostics,omitempty"`
}

// Pass builds a passing outcome.
func Pass(check, path string) Outcome {
	return Outcome{Check: check, Path: path, Status: StatusPass}
}

// Fail builds a failing outcome with the given diagnostic lines.
func Fail(check, path string, kind FailureKind, diagnostics ...string) Outcome {
	return Outcome{
		Check:       check,
		Path:        path,
		Status:      StatusFail,
		Kind:        kind,
		Diagnostics: diagnostics,
	}
}

func (o Outcome) Failed() bool { return o.Status == StatusFail }

// TargetResult collects every outcome produced for one target.
type TargetResult struct {
	Path     string    `json:"path"`
	Variant  Variant   `json:"variant"`
	Status   Status    `json:"status"`
	Outcomes []Outcome `json:"outcomes,omitempty"`
}

// NewTargetResult derives the target status from its outcomes: the target
// fails if any outcome failed.
func NewTargetResult(path string, variant Variant, outcomes []Outcome) TargetResult {
	status := StatusPass
	for _, o := range outcomes {
		if o.Failed() {
			status = StatusFail
			break
		}
	}
	return TargetResult{Path: path, Variant: variant, Status: status, Outcomes: outcomes}
}

// ExitCode is the target's contribution to the aggregate exit code.
func (r TargetResult) ExitCode() int {
	if r.Status == StatusFail {
		return 1
	}
	return 0
}

// Classification records how a path was classified and where the dispatcher
// routes it. Route differs from Variant only for VariantOther.
type Classification struct {
	Path    string  `json:"path"`
	Variant Variant `json:"variant"`
	Route   Variant `json:"route"`
}
