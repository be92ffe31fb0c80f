package domain

// TargetMode records how the target set of a run was selected.
type TargetMode string

const (
	ModeExplicit  TargetMode = "explicit"
	ModeGitLatest TargetMode = "git-latest"
	ModeTree      TargetMode = "tree"
)

// RunSummary is the aggregate of a whole run.
type RunSummary struct {
	Mode       TargetMode     `json:"mode"`
	CommitHash string         `json:"commit_hash,omitempty"`
	Targets    int            `json:"targets"`
	Failures   int            `json:"failures"`
	ExitCode   int            `json:"exit_code"`
	Halted     bool           `json:"halted,omitempty"`
	Results    []TargetResult `json:"results"`
}

// Add folds one target result into the summary. The exit code only ever
// grows, once per failing target.
func (s *RunSummary) Add(r TargetResult) {
	s.Results = append(s.Results, r)
	s.Targets++
	if code := r.ExitCode(); code > 0 {
		s.Failures++
		s.ExitCode += code
	}
}

// Passed reports whether every target passed.
func (s *RunSummary) Passed() bool { return s.ExitCode == 0 }
