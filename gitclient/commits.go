package gitclient

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const (
	committerScanLimit = 100
	fallbackName       = "Forge"
	fallbackEmail      = "forge@example.com"
)

type Commit struct {
	Hash    string
	Author  string
	When    time.Time
	Message string
	Files   []string
}

func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

func (c Commit) Date() string {
	if c.When.IsZero() {
		return "Unknown date"
	}
	return c.When.Local().Format("2006-01-02 15:04:05")
}

// Summary is the first line of the commit message.
func (c Commit) Summary() string {
	line, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return line
}

// CommitAll records the current index as a new commit on HEAD and returns
// its hash.
func (c *Client) CommitAll(message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	wt, err := c.repo.Worktree()
	if err != nil {
		return "", err
	}
	st, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("status: %w", err)
	}
	staged := false
	for _, fs := range st {
		if isStaged(fs) {
			staged = true
			break
		}
	}
	if !staged {
		return "", ErrNothingStaged
	}

	sig := c.signature()
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

func (c *Client) signature() *object.Signature {
	name, email := "", ""
	if cfg, err := c.repo.ConfigScoped(config.SystemScope); err == nil {
		name = strings.TrimSpace(cfg.User.Name)
		email = strings.TrimSpace(cfg.User.Email)
	}
	if name == "" {
		name = envOr("GIT_AUTHOR_NAME", fallbackName)
	}
	if email == "" {
		email = envOr("GIT_AUTHOR_EMAIL", fallbackEmail)
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// CommitHistory walks back from HEAD, newest first. An unborn HEAD yields an
// empty history.
func (c *Client) CommitHistory(limit int) ([]Commit, error) {
	if limit <= 0 {
		return []Commit{}, nil
	}
	iter, err := c.log()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []Commit{}, nil
		}
		return nil, err
	}
	defer iter.Close()

	out := make([]Commit, 0, limit)
	err = iter.ForEach(func(commit *object.Commit) error {
		if len(out) >= limit {
			return storer.ErrStop
		}
		out = append(out, Commit{
			Hash:    commit.Hash.String(),
			Author:  commit.Author.Name,
			When:    commit.Author.When,
			Message: commit.Message,
			Files:   changedFiles(commit),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func changedFiles(commit *object.Commit) []string {
	stats, err := commit.Stats()
	if err != nil {
		return nil
	}
	files := make([]string, 0, len(stats))
	for _, s := range stats {
		files = append(files, s.Name)
	}
	return files
}

// Committers returns the distinct author names of the last 100 commits,
// sorted.
func (c *Client) Committers() ([]string, error) {
	iter, err := c.log()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	defer iter.Close()

	seen := make(map[string]struct{})
	count := 0
	err = iter.ForEach(func(commit *object.Commit) error {
		if count >= committerScanLimit {
			return storer.ErrStop
		}
		count++
		if name := strings.TrimSpace(commit.Author.Name); name != "" {
			seen[name] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *Client) log() (object.CommitIter, error) {
	head, err := c.repo.Head()
	if err != nil {
		return nil, err
	}
	return c.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
}
