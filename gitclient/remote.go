package gitclient

import (
	"errors"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/idxfile"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/mrbonezy/forge/logging"
)

// Fetch downloads from remote and returns how many objects it received.
// When the storage keeps no pack files the count falls back to the number of
// remote-tracking refs that were created or moved.
func (c *Client) Fetch(remote string) (int, error) {
	remote = remoteOrDefault(remote)
	auth, err := c.resolveAuth(remote)
	if err != nil {
		return 0, err
	}
	packsBefore, packsOK := c.packSet()
	before := c.trackingRefs(remote)
	err = auth.run(func(method transport.AuthMethod) error {
		return c.repo.Fetch(&git.FetchOptions{RemoteName: remote, Auth: method})
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if packsOK {
		if n, ok := c.objectsInNewPacks(packsBefore); ok {
			return n, nil
		}
	}
	after := c.trackingRefs(remote)
	updated := 0
	for name, hash := range after {
		if prev, ok := before[name]; !ok || prev != hash {
			updated++
		}
	}
	return updated, nil
}

// Push sends refspec to remote. An empty refspec pushes the current branch
// to the branch of the same name.
func (c *Client) Push(remote string, refspec string) error {
	remote = remoteOrDefault(remote)
	refspec = strings.TrimSpace(refspec)
	if refspec == "" {
		branch, ok := c.HeadBranch()
		if !ok {
			return ErrDetachedHead
		}
		refspec = fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)
	}
	spec := config.RefSpec(refspec)
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid refspec %q: %w", refspec, err)
	}
	auth, err := c.resolveAuth(remote)
	if err != nil {
		return err
	}
	err = auth.run(func(method transport.AuthMethod) error {
		return c.repo.Push(&git.PushOptions{
			RemoteName: remote,
			RefSpecs:   []config.RefSpec{spec},
			Auth:       method,
		})
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

// Pull fast-forwards the current branch from remote. branch selects the
// remote branch; empty means the branch with the current branch's name.
func (c *Client) Pull(remote string, branch string) error {
	remote = remoteOrDefault(remote)
	current, ok := c.HeadBranch()
	if !ok {
		return ErrDetachedHead
	}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		branch = current
	}
	wt, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	auth, err := c.resolveAuth(remote)
	if err != nil {
		return err
	}
	err = auth.run(func(method transport.AuthMethod) error {
		return wt.Pull(&git.PullOptions{
			RemoteName:    remote,
			ReferenceName: plumbing.NewBranchReferenceName(branch),
			SingleBranch:  true,
			Auth:          method,
		})
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

func (c *Client) packSet() (map[plumbing.Hash]struct{}, bool) {
	ps, ok := c.repo.Storer.(storer.PackedObjectStorer)
	if !ok {
		return nil, false
	}
	hashes, err := ps.ObjectPacks()
	if err != nil {
		return nil, false
	}
	out := make(map[plumbing.Hash]struct{}, len(hashes))
	for _, h := range hashes {
		out[h] = struct{}{}
	}
	return out, true
}

// objectsInNewPacks sums the object counts of pack files that were not in
// before. Fetches into on-disk storage always land in a new pack.
func (c *Client) objectsInNewPacks(before map[plumbing.Hash]struct{}) (int, bool) {
	fsStorage, ok := c.repo.Storer.(*filesystem.Storage)
	if !ok {
		return 0, false
	}
	after, ok := c.packSet()
	if !ok {
		return 0, false
	}
	total := 0
	for h := range after {
		if _, seen := before[h]; seen {
			continue
		}
		n, err := packObjectCount(fsStorage, h)
		if err != nil {
			logging.With("gitclient").Debug("read pack index", "pack", h.String(), "error", err)
			return 0, false
		}
		total += n
	}
	return total, true
}

func packObjectCount(s *filesystem.Storage, pack plumbing.Hash) (int, error) {
	fs := s.Filesystem()
	f, err := fs.Open(fs.Join("objects", "pack", "pack-"+pack.String()+".idx"))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	idx := idxfile.NewMemoryIndex()
	if err := idxfile.NewDecoder(f).Decode(idx); err != nil {
		return 0, err
	}
	count, err := idx.Count()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (c *Client) trackingRefs(remote string) map[plumbing.ReferenceName]plumbing.Hash {
	out := make(map[plumbing.ReferenceName]plumbing.Hash)
	iter, err := c.repo.References()
	if err != nil {
		return out
	}
	defer iter.Close()
	prefix := "refs/remotes/" + remote + "/"
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() == plumbing.HashReference && strings.HasPrefix(ref.Name().String(), prefix) {
			out[ref.Name()] = ref.Hash()
		}
		return nil
	})
	return out
}

func remoteOrDefault(remote string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "origin"
	}
	return remote
}
