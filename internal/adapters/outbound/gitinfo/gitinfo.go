package gitinfo

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// GitInfoAdapter implements domain.ChangeLister using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}

func headCommit(repo *git.Repository) (*object.Commit, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}
	return commit, nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// LatestCommitFiles lists the files added or modified by HEAD, compared with
// its first parent. A root commit lists its whole tree. Deleted paths and
// submodules are left out. Returned paths are relative to projectPath.
func (g *GitInfoAdapter) LatestCommitFiles(projectPath string) ([]string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, err
	}
	commit, err := headCommit(repo)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD tree: %w", err)
	}

	var names []string
	if commit.NumParents() == 0 {
		err = tree.Files().ForEach(func(f *object.File) error {
			names = append(names, f.Name)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("listing HEAD tree: %w", err)
		}
	} else {
		names, err = changedSinceParent(commit, tree)
		if err != nil {
			return nil, err
		}
	}

	return relativeTo(repo, projectPath, names)
}

func changedSinceParent(commit *object.Commit, tree *object.Tree) ([]string, error) {
	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("reading parent commit: %w", err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading parent tree: %w", err)
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("diffing HEAD against parent: %w", err)
	}

	var names []string
	for _, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return nil, fmt.Errorf("classifying change: %w", err)
		}
		if action == merkletrie.Delete || ch.To.TreeEntry.Mode == filemode.Submodule {
			continue
		}
		names = append(names, ch.To.Name)
	}
	return names, nil
}

func relativeTo(repo *git.Repository, projectPath string, names []string) ([]string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	base, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(base); err == nil {
		base = resolved
	}
	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		rel, err := filepath.Rel(base, filepath.Join(root, filepath.FromSlash(name)))
		if err != nil {
			return nil, fmt.Errorf("relativizing %s: %w", name, err)
		}
		out = append(out, rel)
	}
	return out, nil
}
