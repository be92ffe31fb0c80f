package domain

import "context"

// Validator checks a single target and returns one or more outcomes. An error
// means the validator could not run at all; check failures are outcomes.
type Validator interface {
	Validate(ctx context.Context, path string) ([]Outcome, error)
}

// Classifier maps a path to the variant that should validate it.
type Classifier interface {
	Classify(path string) Variant
}

// StyleViolation is one finding of an in-process style check. Line is
// 1-based; Offset is the 0-based column.
type StyleViolation struct {
	Line   int    `json:"line"`
	Offset int    `json:"offset"`
	Code   string `json:"code"`
	Text   string `json:"text"`
}

// StyleChecker is the in-process style capability. Codes in ignore are
// suppressed by prefix.
type StyleChecker interface {
	Check(path string, ignore []string) ([]StyleViolation, error)
}

// CommandRunner runs an external tool and captures its combined output.
// A non-zero exit is reported through exitCode; err is reserved for tools
// that could not be started or were cancelled.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (output []byte, exitCode int, err error)
}

// ProjectScanner walks a directory tree and returns the files to validate.
type ProjectScanner interface {
	Scan(root string, excludePatterns ...string) (*ScanResult, error)
}

// ScanResult holds the result of walking a project directory.
type ScanResult struct {
	RootPath string   `json:"root_path"`
	Files    []string `json:"files"`
}

// ChangeLister queries version control.
type ChangeLister interface {
	LatestCommitFiles(repoPath string) ([]string, error)
	CommitHash(repoPath string) (string, error)
}

// ConfigLoader loads the project configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// ResultReporter surfaces outcomes: passes to the live log, failures to the
// live log and the persistent failure report.
type ResultReporter interface {
	Passed(o Outcome)
	Failed(o Outcome) error
	Skipped(path string)
}
