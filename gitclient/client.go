// Package gitclient is the go-git backed adapter the UI uses for every
// repository operation.
package gitclient

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Client wraps one opened repository. It is not safe for concurrent use;
// background jobs open their own Client from the workdir.
type Client struct {
	repo    *git.Repository
	workdir string
}

// Discover opens the repository containing path, walking up parent
// directories like git does.
func Discover(path string) (*Client, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w in %s", ErrNoRepository, abs)
		}
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	return &Client{repo: repo, workdir: wt.Filesystem.Root()}, nil
}

func (c *Client) Workdir() string {
	return c.workdir
}

// HeadBranch returns the checked-out branch name. ok is false on a detached
// HEAD or when HEAD cannot be read. An unborn branch (no commits yet) still
// reports its name.
func (c *Client) HeadBranch() (string, bool) {
	ref, err := c.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", false
	}
	switch ref.Type() {
	case plumbing.SymbolicReference:
		if ref.Target().IsBranch() {
			return ref.Target().Short(), true
		}
		return "", false
	default:
		return "", false
	}
}
