package application

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/repovalidate/repovalidate/internal/domain"
)

// TargetRequest describes how the caller wants targets selected. GitLatest
// wins over Files; with neither, the tree under Root is walked.
type TargetRequest struct {
	GitLatest    bool
	Files        []string
	Root         string
	ExcludePaths []string
	ReportPath   string
}

// TargetSet is the ordered list of paths a run validates.
type TargetSet struct {
	Mode       domain.TargetMode
	CommitHash string
	Paths      []string
}

// TargetService builds the target set of a run.
type TargetService struct {
	scanner domain.ProjectScanner
	changes domain.ChangeLister
	log     *zap.SugaredLogger
}

func NewTargetService(scanner domain.ProjectScanner, changes domain.ChangeLister, log *zap.SugaredLogger) *TargetService {
	return &TargetService{scanner: scanner, changes: changes, log: log}
}

// Resolve selects targets. A failing latest-commit query is not an error:
// the run gets zero targets and the failure is only logged at debug level.
func (s *TargetService) Resolve(req TargetRequest) (TargetSet, error) {
	root := req.Root
	if root == "" {
		root = "."
	}

	switch {
	case req.GitLatest:
		return s.latestCommit(root), nil
	case len(req.Files) > 0:
		return TargetSet{Mode: domain.ModeExplicit, Paths: append([]string(nil), req.Files...)}, nil
	default:
		return s.walk(root, req)
	}
}

func (s *TargetService) latestCommit(root string) TargetSet {
	set := TargetSet{Mode: domain.ModeGitLatest}

	files, err := s.changes.LatestCommitFiles(root)
	if err != nil {
		s.log.Debugw("latest commit query failed, validating nothing", "root", root, "error", err)
		return set
	}
	if hash, err := s.changes.CommitHash(root); err == nil {
		set.CommitHash = hash
	}

	for _, f := range files {
		set.Paths = append(set.Paths, filepath.Join(root, f))
	}
	s.log.Debugw("resolved latest commit targets", "commit", set.CommitHash, "count", len(set.Paths))
	return set
}

func (s *TargetService) walk(root string, req TargetRequest) (TargetSet, error) {
	scan, err := s.scanner.Scan(root, req.ExcludePaths...)
	if err != nil {
		return TargetSet{}, fmt.Errorf("scanning %s: %w", root, err)
	}

	reportAbs := ""
	if req.ReportPath != "" {
		if abs, err := filepath.Abs(req.ReportPath); err == nil {
			reportAbs = abs
		}
	}

	set := TargetSet{Mode: domain.ModeTree}
	for _, f := range scan.Files {
		if reportAbs != "" {
			if abs, err := filepath.Abs(f); err == nil && abs == reportAbs {
				continue
			}
		}
		set.Paths = append(set.Paths, f)
	}
	s.log.Debugw("resolved tree targets", "root", scan.RootPath, "count", len(set.Paths))
	return set, nil
}
