package gitclient

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

type Branch struct {
	Name    string
	Current bool
	Remote  bool
}

// ListBranches returns local branches, then remote-tracking branches, each
// group sorted by name. Symbolic refs such as origin/HEAD are skipped.
func (c *Client) ListBranches(local bool, remote bool) ([]Branch, error) {
	current, _ := c.HeadBranch()
	var locals, remotes []Branch

	iter, err := c.repo.References()
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case local && name.IsBranch():
			short := name.Short()
			locals = append(locals, Branch{Name: short, Current: short == current})
		case remote && name.IsRemote():
			remotes = append(remotes, Branch{Name: name.Short(), Remote: true})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(locals, func(i, j int) bool { return locals[i].Name < locals[j].Name })
	sort.Slice(remotes, func(i, j int) bool { return remotes[i].Name < remotes[j].Name })
	return append(locals, remotes...), nil
}

// CreateBranch points a new local branch at HEAD without checking it out.
func (c *Client) CreateBranch(name string) error {
	refName, err := branchRef(name)
	if err != nil {
		return err
	}
	if _, err := c.repo.Reference(refName, false); err == nil {
		return fmt.Errorf("%w: %s", ErrBranchExists, refName.Short())
	}
	head, err := c.repo.Head()
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}
	return c.repo.Storer.SetReference(plumbing.NewHashReference(refName, head.Hash()))
}

func (c *Client) DeleteBranch(name string) error {
	refName, err := branchRef(name)
	if err != nil {
		return err
	}
	if current, ok := c.HeadBranch(); ok && current == refName.Short() {
		return fmt.Errorf("%w: %s", ErrDeleteCurrentBranch, current)
	}
	if _, err := c.repo.Reference(refName, false); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("%w: %s", ErrBranchNotFound, refName.Short())
		}
		return err
	}
	if err := c.repo.Storer.RemoveReference(refName); err != nil {
		return err
	}
	if err := c.repo.DeleteBranch(refName.Short()); err != nil && !errors.Is(err, git.ErrBranchNotFound) {
		return err
	}
	return nil
}

// CheckoutBranch switches the working copy to an existing local branch.
// Uncommitted changes that would be overwritten abort the switch.
func (c *Client) CheckoutBranch(name string) error {
	refName, err := branchRef(name)
	if err != nil {
		return err
	}
	if current, ok := c.HeadBranch(); ok && current == refName.Short() {
		return fmt.Errorf("%w: %s", ErrAlreadyOnBranch, current)
	}
	if _, err := c.repo.Reference(refName, false); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("%w: %s", ErrBranchNotFound, refName.Short())
		}
		return err
	}
	wt, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Branch: refName})
}

func branchRef(name string) (plumbing.ReferenceName, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t~^:?*[\\") || strings.HasPrefix(name, "-") {
		return "", fmt.Errorf("%w: %q", ErrInvalidBranchName, name)
	}
	refName := plumbing.NewBranchReferenceName(name)
	if err := refName.Validate(); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBranchName, name)
	}
	return refName, nil
}
