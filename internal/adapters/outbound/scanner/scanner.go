package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/repovalidate/repovalidate/internal/domain"
)

// skipDirs are never descended into. Only exact names match, so ".github"
// is still walked.
var skipDirs = map[string]bool{
	".git": true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan walks root in lexical order and returns every regular file and every
// symlink that does not point at a directory. Dangling links are kept so the
// validator reports them. Paths are root joined with the relative path, so
// scanning "." yields "dir/file".
// Exclude patterns are doublestar globs matched against the slash-separated
// relative path; a matching directory prunes its whole subtree.
func (s *FileScanner) Scan(root string, excludePatterns ...string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	for _, p := range excludePatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || excluded(relPath, excludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isFileEntry(path, d) || excluded(relPath, excludePatterns) {
			return nil
		}

		result.Files = append(result.Files, filepath.Join(root, relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return result, nil
}

func isFileEntry(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err != nil || !info.IsDir()
}

func excluded(relPath string, patterns []string) bool {
	slashed := filepath.ToSlash(relPath)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, slashed); ok {
			return true
		}
	}
	return false
}
