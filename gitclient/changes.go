package gitclient

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/mrbonezy/forge/project"
)

const (
	maxPreviewBytes = 256 * 1024
	maxPreviewLines = 400
	noDiff          = "(no diff)"
	binaryPreview   = "(binary file)"
)

// ListChanges reports every tracked modification and untracked file, sorted
// by path.
func (c *Client) ListChanges() ([]project.Change, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	paths := make([]string, 0, len(st))
	for path, fs := range st {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		if isSidecarPath(path) {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	snap := c.contentSnapshot()
	changes := make([]project.Change, 0, len(paths))
	for _, path := range paths {
		fs := st[path]
		change := project.Change{
			Path:   path,
			Status: changeStatus(fs),
			Staged: isStaged(fs),
		}
		head := snap.head(path)
		staged := snap.index(path)
		work := snap.worktree(path)
		change.LocalPreview = unifiedPreview(path, staged, work)
		change.IncomingPreview = unifiedPreview(path, head, staged)
		switch {
		case change.LocalPreview != "":
			change.DiffPreview = change.LocalPreview
		case change.IncomingPreview != "":
			change.DiffPreview = change.IncomingPreview
		default:
			change.DiffPreview = noDiff
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func isSidecarPath(path string) bool {
	return path == project.SidecarName || strings.HasPrefix(path, project.SidecarName+"/")
}

func changeStatus(fs *git.FileStatus) project.FileStatus {
	switch {
	case fs.Worktree == git.Untracked || fs.Staging == git.Added:
		return project.Added
	case fs.Worktree == git.Deleted || fs.Staging == git.Deleted:
		return project.Deleted
	default:
		return project.Modified
	}
}

func isStaged(fs *git.FileStatus) bool {
	return fs.Staging != git.Unmodified && fs.Staging != git.Untracked
}

// StageFile adds path to the index. Deleted files are staged as removals.
func (c *Client) StageFile(path string) error {
	wt, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	if _, err := wt.Add(filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	return nil
}

// UnstageFile resets the index entry for path to its HEAD version, or drops
// it from the index when HEAD does not have it.
func (c *Client) UnstageFile(path string) error {
	path = filepath.ToSlash(path)
	idx, err := c.repo.Storer.Index()
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	var headFile *object.File
	if tree := c.headTree(); tree != nil {
		if f, ferr := tree.File(path); ferr == nil {
			headFile = f
		}
	}

	if headFile == nil {
		if _, err := idx.Remove(path); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
			return fmt.Errorf("unstage %s: %w", path, err)
		}
	} else {
		entry, err := idx.Entry(path)
		if err != nil {
			entry = idx.Add(path)
		}
		entry.Hash = headFile.Hash
		entry.Mode = headFile.Mode
		entry.Size = uint32(headFile.Size)
	}
	if err := c.repo.Storer.SetIndex(idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

func (c *Client) headTree() *object.Tree {
	ref, err := c.repo.Head()
	if err != nil {
		return nil
	}
	commit, err := c.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil
	}
	return tree
}

// contentSnapshot reads HEAD and the index once per ListChanges call.
type contentSnapshot struct {
	c    *Client
	tree *object.Tree
	idx  *index.Index
}

func (c *Client) contentSnapshot() contentSnapshot {
	snap := contentSnapshot{c: c, tree: c.headTree()}
	if idx, err := c.repo.Storer.Index(); err == nil {
		snap.idx = idx
	}
	return snap
}

func (s contentSnapshot) head(path string) string {
	if s.tree == nil {
		return ""
	}
	f, err := s.tree.File(path)
	if err != nil {
		return ""
	}
	return s.blob(f.Hash)
}

func (s contentSnapshot) index(path string) string {
	if s.idx == nil {
		return ""
	}
	e, err := s.idx.Entry(path)
	if err != nil {
		return ""
	}
	return s.blob(e.Hash)
}

func (s contentSnapshot) blob(hash plumbing.Hash) string {
	blob, err := s.c.repo.BlobObject(hash)
	if err != nil {
		return ""
	}
	r, err := blob.Reader()
	if err != nil {
		return ""
	}
	defer r.Close()
	return readPreview(r)
}

func (s contentSnapshot) worktree(path string) string {
	f, err := os.Open(filepath.Join(s.c.workdir, filepath.FromSlash(path)))
	if err != nil {
		return ""
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return ""
	}
	return readPreview(f)
}

func readPreview(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxPreviewBytes))
	if err != nil {
		return ""
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return binaryPreview
	}
	return string(data)
}

func unifiedPreview(path string, before string, after string) string {
	if before == after {
		return ""
	}
	if before == binaryPreview || after == binaryPreview {
		return binaryPreview
	}
	diff := udiff.Unified("a/"+path, "b/"+path, before, after)
	lines := strings.SplitAfter(diff, "\n")
	if len(lines) > maxPreviewLines {
		lines = append(lines[:maxPreviewLines], "... (truncated)\n")
	}
	return strings.Join(lines, "")
}
