package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/repo"

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	}
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestFileScanner_Scan(t *testing.T) {
	result, err := scanner.New().Scan(fixtureDir)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(result.RootPath))
	assert.Contains(t, rel(t, fixtureDir, result.Files), "devices/router.yaml")
	assert.Contains(t, rel(t, fixtureDir, result.Files), "scripts/deploy.py")
}

func TestFileScanner_LexicalOrderAndJoinedPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b.sh", "a/z.yaml", "a/b.py", "c.php")

	result, err := scanner.New().Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "b.py"),
		filepath.Join(root, "a", "z.yaml"),
		filepath.Join(root, "b.sh"),
		filepath.Join(root, "c.php"),
	}, result.Files)
}

func TestFileScanner_KeepsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real.sh", "dir/inner.sh")
	require.NoError(t, os.Symlink("real.sh", filepath.Join(root, "link.sh")))
	require.NoError(t, os.Symlink("missing.sh", filepath.Join(root, "dangling.sh")))
	require.NoError(t, os.Symlink("dir", filepath.Join(root, "dirlink")))

	result, err := scanner.New().Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"dangling.sh", "dir/inner.sh", "link.sh", "real.sh"}, rel(t, root, result.Files))
}

func TestFileScanner_SkipsGitButNotGithub(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".git/config", ".git/hooks/pre-commit", ".github/workflows/ci.yaml", "main.py")

	result, err := scanner.New().Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{".github/workflows/ci.yaml", "main.py"}, rel(t, root, result.Files))
}

func TestFileScanner_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "vendor/lib/x.sh", "docs/a.md", "docs/b.yaml", "src/tool.py", "src/gen/out.py")

	result, err := scanner.New().Scan(root, "vendor", "**/*.md", "src/gen/**")
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/b.yaml", "src/tool.py"}, rel(t, root, result.Files))
}

func TestFileScanner_InvalidPattern(t *testing.T) {
	_, err := scanner.New().Scan(t.TempDir(), "[unterminated")
	assert.Error(t, err)
}

func TestFileScanner_MissingRoot(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFileScanner_EmptyTree(t *testing.T) {
	result, err := scanner.New().Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Files)
}
