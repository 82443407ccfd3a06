package gitclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func isolateGitConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_AUTHOR_NAME", "")
	t.Setenv("GIT_AUTHOR_EMAIL", "")
}

func initRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return repo, dir
}

func writeFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func commitFile(t *testing.T, repo *git.Repository, dir string, name string, content string, author string) plumbing.Hash {
	t.Helper()
	writeFile(t, dir, name, content)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	hash, err := wt.Commit("update "+name, &git.CommitOptions{
		Author: &object.Signature{Name: author, Email: author + "@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func discover(t *testing.T, dir string) *Client {
	t.Helper()
	c, err := Discover(dir)
	require.NoError(t, err)
	return c
}

// newRemotePair returns a bare origin and a working repo that has pushed one
// commit to it.
func newRemotePair(t *testing.T) (string, *git.Repository, string) {
	t.Helper()
	bare := t.TempDir()
	_, err := git.PlainInit(bare, true)
	require.NoError(t, err)

	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "README.md", "hello\n", "Ada")
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{bare}})
	require.NoError(t, err)
	require.NoError(t, discover(t, dir).Push("origin", ""))
	return bare, repo, dir
}

func cloneRepo(t *testing.T, url string) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainClone(dir, false, &git.CloneOptions{URL: url})
	require.NoError(t, err)
	return repo, dir
}
