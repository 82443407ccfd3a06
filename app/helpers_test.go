package app

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mrbonezy/forge/config"
	"github.com/mrbonezy/forge/gitclient"
	"github.com/mrbonezy/forge/project"
)

type fakeGit struct {
	workdir    string
	branch     string
	changes    []project.Change
	branches   []gitclient.Branch
	commits    []gitclient.Commit
	committers []string

	commitHash    string
	commitErr     error
	committed     []string
	createdBranch []string
	deleted       []string
	checkedOut    []string
}

func newFakeGit(t *testing.T) *fakeGit {
	t.Helper()
	return &fakeGit{
		workdir: t.TempDir(),
		branch:  "main",
		changes: []project.Change{
			{Path: "main.go", Status: project.Modified, DiffPreview: "-a\n+b"},
			{Path: "README.md", Status: project.Added, Staged: true},
		},
		branches: []gitclient.Branch{
			{Name: "main", Current: true},
			{Name: "feature", Current: false},
			{Name: "origin/main", Remote: true},
		},
		commits: []gitclient.Commit{
			{Hash: "0123456789abcdef", Author: "Ana", When: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Message: "Initial commit"},
		},
		committers: []string{"Ana", "Bo"},
		commitHash: "abcdef0123456789",
	}
}

func (f *fakeGit) Workdir() string            { return f.workdir }
func (f *fakeGit) HeadBranch() (string, bool) { return f.branch, f.branch != "" }

func (f *fakeGit) ListChanges() ([]project.Change, error) {
	return append([]project.Change(nil), f.changes...), nil
}

func (f *fakeGit) setStaged(path string, staged bool) error {
	for i := range f.changes {
		if f.changes[i].Path == path {
			f.changes[i].Staged = staged
			return nil
		}
	}
	return errors.New("no such file")
}

func (f *fakeGit) StageFile(path string) error   { return f.setStaged(path, true) }
func (f *fakeGit) UnstageFile(path string) error { return f.setStaged(path, false) }

func (f *fakeGit) CommitAll(message string) (string, error) {
	if f.commitErr != nil {
		return "", f.commitErr
	}
	f.committed = append(f.committed, message)
	f.changes = nil
	return f.commitHash, nil
}

func (f *fakeGit) ListBranches(local bool, remote bool) ([]gitclient.Branch, error) {
	var out []gitclient.Branch
	for _, b := range f.branches {
		if (b.Remote && remote) || (!b.Remote && local) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeGit) CreateBranch(name string) error {
	f.createdBranch = append(f.createdBranch, name)
	f.branches = append(f.branches, gitclient.Branch{Name: name})
	return nil
}

func (f *fakeGit) DeleteBranch(name string) error {
	f.deleted = append(f.deleted, name)
	for i, b := range f.branches {
		if b.Name == name {
			f.branches = append(f.branches[:i], f.branches[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeGit) CheckoutBranch(name string) error {
	f.checkedOut = append(f.checkedOut, name)
	for i := range f.branches {
		f.branches[i].Current = f.branches[i].Name == name && !f.branches[i].Remote
	}
	f.branch = name
	return nil
}

func (f *fakeGit) CommitHistory(limit int) ([]gitclient.Commit, error) {
	if limit > 0 && len(f.commits) > limit {
		return f.commits[:limit], nil
	}
	return f.commits, nil
}

func (f *fakeGit) Committers() ([]string, error) { return f.committers, nil }

func newGitState(t *testing.T, git *fakeGit) *State {
	t.Helper()
	return NewState(Options{Git: git, Config: config.Default()})
}

// newMockState has no repository and a single project with the given
// modules.
func newMockState(t *testing.T, modules ...project.Module) *State {
	t.Helper()
	p := project.Project{ID: uuid.New(), Name: "demo", Branch: "main", Modules: modules}
	return NewState(Options{Store: project.NewStore(p), Config: config.Default()})
}

func dispatchAll(t *testing.T, s *State, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		require.False(t, s.Dispatch(a), "unexpected quit on %s", a)
	}
}

func act(kind ActionKind) Action { return Action{Kind: kind} }
