package gitclient

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbonezy/forge/project"
)

func TestDiscover_FromSubdirectory(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "pkg/a.go", "package pkg\n", "Ada")

	c := discover(t, filepath.Join(dir, "pkg"))
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(c.Workdir())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDiscover_NoRepository(t *testing.T) {
	_, err := Discover(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRepository))
	assert.Equal(t, "No Git repository detected", ExplainError(ErrNoRepository))
}

func TestHeadBranch(t *testing.T) {
	repo, dir := initRepo(t)
	c := discover(t, dir)

	name, ok := c.HeadBranch()
	assert.True(t, ok, "unborn branch still reports its name")
	assert.NotEmpty(t, name)

	hash := commitFile(t, repo, dir, "a.txt", "a\n", "Ada")
	name2, ok := c.HeadBranch()
	assert.True(t, ok)
	assert.Equal(t, name, name2)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: hash}))
	_, ok = c.HeadBranch()
	assert.False(t, ok, "detached HEAD")
}

func TestListChanges_StatusesAndStaging(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "keep.txt", "one\n", "Ada")
	commitFile(t, repo, dir, "gone.txt", "bye\n", "Ada")

	writeFile(t, dir, "keep.txt", "one\ntwo\n")
	writeFile(t, dir, "new.txt", "fresh\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "gone.txt")))

	c := discover(t, dir)
	changes, err := c.ListChanges()
	require.NoError(t, err)
	require.Len(t, changes, 3)

	byPath := map[string]project.Change{}
	for _, ch := range changes {
		byPath[ch.Path] = ch
	}
	assert.Equal(t, project.Deleted, byPath["gone.txt"].Status)
	assert.Equal(t, project.Modified, byPath["keep.txt"].Status)
	assert.Equal(t, project.Added, byPath["new.txt"].Status)
	for _, ch := range changes {
		assert.False(t, ch.Staged, ch.Path)
	}
	assert.Contains(t, byPath["keep.txt"].DiffPreview, "+two")
	assert.Contains(t, byPath["new.txt"].DiffPreview, "+fresh")

	require.NoError(t, c.StageFile("keep.txt"))
	require.NoError(t, c.StageFile("gone.txt"))
	changes, err = c.ListChanges()
	require.NoError(t, err)
	for _, ch := range changes {
		switch ch.Path {
		case "keep.txt", "gone.txt":
			assert.True(t, ch.Staged, ch.Path)
		default:
			assert.False(t, ch.Staged, ch.Path)
		}
	}
}

func TestUnstageFile(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "tracked.txt", "v1\n", "Ada")
	writeFile(t, dir, "tracked.txt", "v2\n")
	writeFile(t, dir, "brand-new.txt", "x\n")

	c := discover(t, dir)
	require.NoError(t, c.StageFile("tracked.txt"))
	require.NoError(t, c.StageFile("brand-new.txt"))

	require.NoError(t, c.UnstageFile("tracked.txt"))
	require.NoError(t, c.UnstageFile("brand-new.txt"))

	changes, err := c.ListChanges()
	require.NoError(t, err)
	require.Len(t, changes, 2)
	for _, ch := range changes {
		assert.False(t, ch.Staged, ch.Path)
	}
	assert.Equal(t, "brand-new.txt", changes[0].Path)
	assert.Equal(t, project.Added, changes[0].Status)
	assert.Equal(t, project.Modified, changes[1].Status)
}

func TestUnstageFile_WithoutHead(t *testing.T) {
	_, dir := initRepo(t)
	writeFile(t, dir, "first.txt", "x\n")
	c := discover(t, dir)
	require.NoError(t, c.StageFile("first.txt"))
	require.NoError(t, c.UnstageFile("first.txt"))

	changes, err := c.ListChanges()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.False(t, changes[0].Staged)
}

func TestCommitAll(t *testing.T) {
	isolateGitConfig(t)
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "a\n", "Ada")
	c := discover(t, dir)

	_, err := c.CommitAll("   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	writeFile(t, dir, "a.txt", "b\n")
	_, err = c.CommitAll("nothing staged yet")
	assert.ErrorIs(t, err, ErrNothingStaged)
	assert.Equal(t, "No files staged for commit", ExplainError(err))

	require.NoError(t, c.StageFile("a.txt"))
	hash, err := c.CommitAll("change a")
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	history, err := c.CommitHistory(10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, hash, history[0].Hash)
	assert.Equal(t, "change a", history[0].Summary())
	assert.Equal(t, fallbackName, history[0].Author)
	assert.Equal(t, []string{"a.txt"}, history[0].Files)
}

func TestCommitAll_FirstCommit(t *testing.T) {
	isolateGitConfig(t)
	_, dir := initRepo(t)
	writeFile(t, dir, "init.txt", "x\n")
	c := discover(t, dir)
	require.NoError(t, c.StageFile("init.txt"))
	_, err := c.CommitAll("initial")
	require.NoError(t, err)

	changes, err := c.ListChanges()
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestCommitHistory_LimitAndEmpty(t *testing.T) {
	repo, dir := initRepo(t)
	c := discover(t, dir)

	history, err := c.CommitHistory(50)
	require.NoError(t, err)
	assert.Empty(t, history, "unborn HEAD")

	for i, name := range []string{"a", "b", "c", "d"} {
		commitFile(t, repo, dir, name+".txt", name, []string{"Ada", "Bob"}[i%2])
	}
	history, err = c.CommitHistory(3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, "update d.txt", history[0].Summary())
	assert.Len(t, history[0].ShortHash(), 7)
}

func TestCommitters(t *testing.T) {
	repo, dir := initRepo(t)
	for i, author := range []string{"Bob", "Ada", "Bob", "Cy"} {
		commitFile(t, repo, dir, "f.txt", string(rune('a'+i)), author)
	}
	names, err := discover(t, dir).Committers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Bob", "Cy"}, names)
}

func TestBranchLifecycle(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "a\n", "Ada")
	c := discover(t, dir)
	current, _ := c.HeadBranch()

	require.NoError(t, c.CreateBranch("feature/xy"))
	assert.ErrorIs(t, c.CreateBranch("feature/xy"), ErrBranchExists)
	assert.ErrorIs(t, c.CreateBranch("bad name"), ErrInvalidBranchName)

	branches, err := c.ListBranches(true, false)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, b := range branches {
		names[b.Name] = b.Current
	}
	assert.Equal(t, map[string]bool{current: true, "feature/xy": false}, names)

	assert.ErrorIs(t, c.CheckoutBranch(current), ErrAlreadyOnBranch)
	require.NoError(t, c.CheckoutBranch("feature/xy"))
	head, _ := c.HeadBranch()
	assert.Equal(t, "feature/xy", head)

	assert.ErrorIs(t, c.DeleteBranch("feature/xy"), ErrDeleteCurrentBranch)
	require.NoError(t, c.CheckoutBranch(current))
	require.NoError(t, c.DeleteBranch("feature/xy"))
	assert.ErrorIs(t, c.DeleteBranch("feature/xy"), ErrBranchNotFound)
	assert.ErrorIs(t, c.CheckoutBranch("feature/xy"), ErrBranchNotFound)
}

func TestPushFetchPull(t *testing.T) {
	isolateGitConfig(t)
	bare, repo, dir := newRemotePair(t)
	_, cloneDir := cloneRepo(t, bare)
	clone := discover(t, cloneDir)

	n, err := clone.Fetch("origin")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "already up to date")

	commitFile(t, repo, dir, "README.md", "hello again\n", "Ada")
	require.NoError(t, discover(t, dir).Push("origin", ""))

	n, err = clone.Fetch("origin")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "commit, root tree and README blob")

	branches, err := clone.ListBranches(true, true)
	require.NoError(t, err)
	var remotes []string
	for _, b := range branches {
		if b.Remote {
			remotes = append(remotes, b.Name)
		}
	}
	assert.NotEmpty(t, remotes)

	require.NoError(t, clone.Pull("origin", ""))
	data, err := os.ReadFile(filepath.Join(cloneDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello again\n", string(data))

	require.NoError(t, clone.Pull("origin", ""), "already up to date is not an error")
}

func TestFetch_UnknownRemote(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "a\n", "Ada")
	_, err := discover(t, dir).Fetch("upstream")
	require.Error(t, err)
	assert.Equal(t, "Remote not found. Check 'git remote -v'.", ExplainError(err))
}

func TestListChanges_IgnoresSidecarFiles(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "main.go", "package main\n", "Ada")
	c := discover(t, dir)

	store := project.NewStore(project.New(dir, "main"))
	require.NoError(t, store.Save(dir))
	changes, err := c.ListChanges()
	require.NoError(t, err)
	assert.Empty(t, changes)

	// A sidecar that was committed by hand and then rewritten stays hidden too.
	commitFile(t, repo, dir, ".forge/notes.json", "{}\n", "Ada")
	writeFile(t, dir, ".forge/notes.json", "{\"a\":1}\n")
	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	changes, err = c.ListChanges()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "main.go", changes[0].Path)
}
