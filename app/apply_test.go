package app

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbonezy/forge/config"
	"github.com/mrbonezy/forge/gitclient"
	"github.com/mrbonezy/forge/project"
	"github.com/mrbonezy/forge/tasks"
)

func switchView(t *testing.T, s *State, v View) {
	t.Helper()
	for s.View() != v {
		dispatchAll(t, s, act(ActionNextView))
	}
}

func typeText(t *testing.T, s *State, text string) {
	t.Helper()
	for _, c := range text {
		dispatchAll(t, s, InputChar(c))
	}
}

func TestApply_EmptyUpdateKeepsStatus(t *testing.T) {
	s := newMockState(t)
	s.status = "keep me"
	s.Apply(ActionResult{}, StateUpdate{})
	assert.Equal(t, "keep me", s.Status())
}

func TestApply_EnteringViewsReloadsCaches(t *testing.T) {
	git := newFakeGit(t)
	s := newGitState(t, git)
	git.changes = append(git.changes, project.Change{Path: "new.go", Status: project.Added})
	git.branch = "feature"

	switchView(t, s, ViewChanges)
	assert.Len(t, s.activeProject().Changes, 3)
	assert.Equal(t, "feature", s.activeProject().Branch)

	switchView(t, s, ViewCommitHistory)
	require.Len(t, s.history.commits, 1)
	assert.Equal(t, "Ana", s.history.commits[0].Author)

	switchView(t, s, ViewBranchManager)
	assert.Len(t, s.branches.branches, 3)
}

func TestApply_NoRepositoryKeepsCachesEmpty(t *testing.T) {
	s := newMockState(t)
	switchView(t, s, ViewCommitHistory)
	assert.Empty(t, s.history.commits)
	switchView(t, s, ViewBranchManager)
	assert.Empty(t, s.branches.branches)
}

func TestApply_BranchCreate(t *testing.T) {
	git := newFakeGit(t)
	s := newGitState(t, git)
	switchView(t, s, ViewBranchManager)
	require.Len(t, s.branches.branches, 3)

	dispatchAll(t, s, InputChar('n'))
	assert.Equal(t, BranchCreate, s.branches.mode)
	typeText(t, s, "xy")
	assert.Equal(t, "xy", s.branches.input)

	dispatchAll(t, s, act(ActionSelect))
	assert.Equal(t, []string{"xy"}, git.createdBranch)
	assert.Equal(t, BranchList, s.branches.mode)
	assert.Empty(t, s.branches.input)
	require.Len(t, s.branches.branches, 4)
	b, ok := s.selectedBranch()
	require.True(t, ok)
	assert.Equal(t, "xy", b.Name)
	assert.Equal(t, "✓ Created branch xy", s.StatusBar())
}

func TestApply_BranchGuards(t *testing.T) {
	git := newFakeGit(t)
	s := newGitState(t, git)
	switchView(t, s, ViewBranchManager)

	// main is current
	dispatchAll(t, s, InputChar('d'))
	assert.Empty(t, git.deleted)
	assert.Contains(t, s.Status(), "✗")

	dispatchAll(t, s, act(ActionSelect))
	assert.Equal(t, "ℹ Already on branch main", s.Status())

	dispatchAll(t, s, act(ActionNavigateDown), act(ActionSelect))
	assert.Equal(t, []string{"feature"}, git.checkedOut)
	assert.Equal(t, "✓ Switched to feature", s.Status())

	dispatchAll(t, s, act(ActionNavigateDown), act(ActionSelect))
	assert.Len(t, git.checkedOut, 1)
	assert.Contains(t, s.Status(), "Cannot switch to remote branch origin/main")
}

func TestApply_BoardMove(t *testing.T) {
	mod := project.Module{ID: uuid.New(), Name: "Parser", Status: project.Current}
	s := newMockState(t, mod)
	switchView(t, s, ViewProjectBoard)

	dispatchAll(t, s, act(ActionSelect))
	p := s.activeProject()
	assert.Equal(t, project.Completed, p.Modules[0].Status)
	assert.Equal(t, "✓ Moved Parser to Completed", s.Status())

	dispatchAll(t, s, act(ActionSelect), act(ActionSelect))
	assert.Equal(t, project.Completed, p.Modules[0].Status)

	dispatchAll(t, s, act(ActionNavigateRight), act(ActionSelect))
	assert.Equal(t, project.Completed, p.Modules[0].Status)
	assert.Equal(t, "ℹ Parser is already Completed", s.Status())
}

func TestApply_CommitBumpsCurrentModule(t *testing.T) {
	git := newFakeGit(t)
	s := newGitState(t, git)
	p := s.activeProject()
	require.Equal(t, "Core", p.Modules[0].Name)
	before := p.Modules[0].Progress

	switchView(t, s, ViewChanges)
	typeText(t, s, "Update docs")
	dispatchAll(t, s, act(ActionSelect))

	assert.Equal(t, []string{"Update docs"}, git.committed)
	assert.Equal(t, before+5, p.Modules[0].Progress)
	assert.Empty(t, s.changes.message)
	assert.Empty(t, p.Changes)
	assert.Equal(t, "✓ Committed abcdef0: Update docs", s.Status())
	assert.DirExists(t, project.SidecarDir(git.workdir))
}

func TestApply_CommitFailureLeavesMessage(t *testing.T) {
	git := newFakeGit(t)
	git.commitErr = gitclient.ErrNothingStaged
	s := newGitState(t, git)
	before := s.activeProject().Modules[0].Progress

	switchView(t, s, ViewChanges)
	typeText(t, s, "Update")
	dispatchAll(t, s, act(ActionSelect))

	assert.Equal(t, "Update", s.changes.message)
	assert.Equal(t, before, s.activeProject().Modules[0].Progress)
	assert.Contains(t, s.Status(), "✗")
}

func TestApply_MockCommitClearsMessage(t *testing.T) {
	s := newMockState(t)
	switchView(t, s, ViewChanges)
	typeText(t, s, "Update")
	dispatchAll(t, s, act(ActionSelect))
	assert.Empty(t, s.changes.message)
	assert.Equal(t, mockCommitMessage, s.Status())
}

func TestApply_ToggleStaging(t *testing.T) {
	git := newFakeGit(t)
	s := newGitState(t, git)
	switchView(t, s, ViewChanges)

	dispatchAll(t, s, Action{Kind: ActionToggleStaging, Rune: ' '})
	assert.True(t, git.changes[0].Staged)
	assert.True(t, s.activeProject().Changes[0].Staged)
	assert.Equal(t, "✓ Staged main.go", s.Status())

	dispatchAll(t, s, Action{Kind: ActionToggleStaging, Rune: ' '})
	assert.False(t, git.changes[0].Staged)
	assert.Equal(t, "✓ Unstaged main.go", s.Status())
}

func TestApply_ToggleStagingMock(t *testing.T) {
	s := newMockState(t)
	s.activeProject().Changes = []project.Change{{Path: "a.go"}}
	switchView(t, s, ViewChanges)
	dispatchAll(t, s, Action{Kind: ActionToggleStaging, Rune: ' '})
	assert.True(t, s.activeProject().Changes[0].Staged)
	assert.Equal(t, "ℹ Staged a.go (mock)", s.Status())
}

func TestApply_ModuleAndDeveloperLifecycle(t *testing.T) {
	s := newMockState(t)
	switchView(t, s, ViewModuleManager)
	p := s.activeProject()

	dispatchAll(t, s, InputChar('n'))
	assert.Equal(t, CreateModule, s.modules.mode)
	typeText(t, s, "Lexer")
	dispatchAll(t, s, act(ActionSelect))
	require.Len(t, p.Modules, 1)
	assert.Equal(t, "Lexer", p.Modules[0].Name)
	assert.Equal(t, ModuleList, s.modules.mode)
	assert.Equal(t, "✓ Created module Lexer", s.Status())

	dispatchAll(t, s, act(ActionSwitchModuleList), InputChar('n'))
	assert.Equal(t, CreateDeveloper, s.modules.mode)
	typeText(t, s, "Ana")
	dispatchAll(t, s, act(ActionSelect))
	require.Len(t, p.Developers, 1)
	assert.Equal(t, "✓ Added developer Ana", s.Status())
	assert.Equal(t, DeveloperList, s.modules.mode)

	dispatchAll(t, s, act(ActionSwitchModuleList), InputChar('a'))
	assert.Equal(t, AssignDeveloper, s.modules.mode)
	dispatchAll(t, s, act(ActionSelect))
	assert.Equal(t, "Ana", p.OwnerName(p.Modules[0]))
	assert.Equal(t, "✓ Assigned Lexer to Ana", s.Status())

	dispatchAll(t, s, InputChar('e'))
	assert.Equal(t, "Lexer", s.modules.input)
	dispatchAll(t, s, act(ActionBackspace), act(ActionBackspace))
	typeText(t, s, "ing")
	dispatchAll(t, s, act(ActionSelect))
	assert.Equal(t, "Lexing", p.Modules[0].Name)
	assert.Equal(t, uuid.Nil, s.modules.editing)

	dispatchAll(t, s, act(ActionSwitchModuleList), InputChar('d'))
	assert.Empty(t, p.Developers)
	assert.Nil(t, p.Modules[0].Owner)

	dispatchAll(t, s, act(ActionSwitchModuleList), InputChar('d'))
	assert.Empty(t, p.Modules)
	assert.Equal(t, "✓ Deleted module Lexing", s.Status())
}

func TestApply_ModuleCreateCancelled(t *testing.T) {
	s := newMockState(t)
	switchView(t, s, ViewModuleManager)
	dispatchAll(t, s, InputChar('n'))
	typeText(t, s, "Tmp")
	dispatchAll(t, s, act(ActionBack))
	assert.Equal(t, ModuleList, s.modules.mode)
	assert.Empty(t, s.modules.input)
	assert.Empty(t, s.activeProject().Modules)
	assert.Equal(t, FocusView, s.Focus())
}

func TestApply_MergeAccept(t *testing.T) {
	s := newMockState(t)
	s.activeProject().Changes = []project.Change{{Path: "a.go"}, {Path: "b.go"}}
	switchView(t, s, ViewMergeVisualizer)

	dispatchAll(t, s, act(ActionSelect))
	assert.Empty(t, s.merge.resolutions)

	dispatchAll(t, s, act(ActionNavigateRight), act(ActionSelect))
	assert.Equal(t, "✓ Accepted local version", s.Status())
	dispatchAll(t, s, act(ActionNavigateDown), act(ActionNavigateRight), act(ActionSelect))
	assert.Equal(t, "✓ Accepted incoming version", s.Status())

	snap := s.Snapshot(120, 30, "")
	require.Len(t, snap.Merge.Files, 2)
	assert.Equal(t, "local", snap.Merge.Files[0].Resolution)
	assert.Equal(t, "incoming", snap.Merge.Files[1].Resolution)
	assert.Equal(t, "Incoming", snap.Merge.Focus)
}

func TestApply_SettingsToggleSaves(t *testing.T) {
	var saved []config.Config
	s := NewState(Options{
		Store:      project.NewStore(project.Demo()),
		Config:     config.Default(),
		SaveConfig: func(c config.Config) error { saved = append(saved, c); return nil },
	})
	switchView(t, s, ViewSettings)

	dispatchAll(t, s, act(ActionNavigateDown), act(ActionSelect))
	assert.False(t, s.Config().Notifications)
	assert.Equal(t, "✓ Set Notifications: Off", s.Status())
	require.Len(t, saved, 1)
	assert.False(t, saved[0].Notifications)

	dispatchAll(t, s, act(ActionNavigateUp), act(ActionSelect))
	assert.Equal(t, config.ThemeHighContrast, s.Config().Theme)
}

func TestApply_CopyCommitHash(t *testing.T) {
	git := newFakeGit(t)
	var copied string
	s := NewState(Options{
		Git:       git,
		Config:    config.Default(),
		Clipboard: func(text string) error { copied = text; return nil },
	})
	switchView(t, s, ViewCommitHistory)
	require.Len(t, s.history.commits, 1)

	dispatchAll(t, s, InputChar('y'))
	assert.Equal(t, "0123456789abcdef", copied)
	assert.Equal(t, "✓ Copied 0123456 to clipboard", s.Status())

	s.copyText = func(string) error { return errors.New("no display") }
	dispatchAll(t, s, InputChar('y'))
	assert.Equal(t, "✗ Clipboard unavailable", s.Status())
}

func TestApply_SearchKeepsActiveProject(t *testing.T) {
	s := NewState(Options{
		Store: project.NewStore(
			project.Project{ID: uuid.New(), Name: "alpha"},
			project.Project{ID: uuid.New(), Name: "beta"},
			project.Project{ID: uuid.New(), Name: "gamma"},
		),
		Config: config.Default(),
	})
	dispatchAll(t, s, act(ActionSearch))
	typeText(t, s, "ta")
	assert.Equal(t, "beta", s.activeProject().Name)

	dispatchAll(t, s, act(ActionBack))
	assert.False(t, s.dashboard.search)
	assert.Empty(t, s.dashboard.query)
	assert.Equal(t, "Exited search", s.Status())
}

type countingRemote struct{ objects int }

func (r countingRemote) Fetch(string) (int, error) { return r.objects, nil }
func (r countingRemote) Push(string, string) error { return nil }
func (r countingRemote) Pull(string, string) error { return nil }

func TestPoll_FetchReconciliation(t *testing.T) {
	git := newFakeGit(t)
	mgr := tasks.NewManager(func(string) (tasks.Remote, error) { return countingRemote{objects: 3}, nil })
	defer mgr.Close()
	s := NewState(Options{Git: git, Tasks: mgr, Config: config.Default()})

	dispatchAll(t, s, InputChar('f'))
	assert.Equal(t, 1, s.PendingCount())
	assert.Equal(t, "⟳ Fetching from origin...", s.StatusBar())

	require.Eventually(t, func() bool {
		s.Poll()
		return s.PendingCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "✓ Fetched 3 objects from origin", s.StatusBar())

	// the completion stays until the next action
	dispatchAll(t, s, act(ActionHelp))
	assert.NotEqual(t, "✓ Fetched 3 objects from origin", s.StatusBar())
}

// scriptedTasks finishes ops only when the test delivers them.
type scriptedTasks struct {
	spawned []tasks.Op
	ready   []tasks.Result
}

func (r *scriptedTasks) Spawn(_ string, op tasks.Op) { r.spawned = append(r.spawned, op) }

func (r *scriptedTasks) TryRecv() (tasks.Result, bool) {
	if len(r.ready) == 0 {
		return tasks.Result{}, false
	}
	res := r.ready[0]
	r.ready = r.ready[1:]
	for i, op := range r.spawned {
		if op == res.Op {
			r.spawned = append(r.spawned[:i], r.spawned[i+1:]...)
			break
		}
	}
	return res, true
}

func (r *scriptedTasks) PendingCount() int { return len(r.spawned) }

func (r *scriptedTasks) finish(op tasks.Op, message string) {
	r.ready = append(r.ready, tasks.Result{Op: op, OK: true, Message: message})
}

func TestPoll_StatusBarNamesOldestPendingOp(t *testing.T) {
	runner := &scriptedTasks{}
	s := NewState(Options{Git: newFakeGit(t), Tasks: runner, Config: config.Default()})
	switchView(t, s, ViewChanges)

	dispatchAll(t, s, InputChar('f'), InputChar('p'))
	require.Equal(t, 2, s.PendingCount())
	assert.Equal(t, "⟳ Fetching from origin...", s.StatusBar())

	runner.finish(tasks.FetchOp("origin"), "Fetched 0 objects from origin")
	assert.Equal(t, 1, s.Poll())
	assert.Equal(t, "⟳ Pushing to origin...", s.StatusBar())

	dispatchAll(t, s, InputChar('f'))
	runner.finish(tasks.PushOp("origin"), "Pushed to origin")
	assert.Equal(t, 1, s.Poll())
	assert.Equal(t, 1, s.PendingCount())
	assert.Equal(t, "⟳ Fetching from origin...", s.StatusBar())

	runner.finish(tasks.FetchOp("origin"), "Fetched 2 objects from origin")
	s.Poll()
	assert.Equal(t, "✓ Fetched 2 objects from origin", s.StatusBar())
	assert.Empty(t, s.inflight)
}

func TestPoll_NotificationsOffSuppressesSuccess(t *testing.T) {
	git := newFakeGit(t)
	mgr := tasks.NewManager(func(string) (tasks.Remote, error) { return countingRemote{objects: 1}, nil })
	defer mgr.Close()
	cfg := config.Default()
	cfg.Notifications = false
	s := NewState(Options{Git: git, Tasks: mgr, Config: cfg})

	dispatchAll(t, s, InputChar('f'))
	require.Eventually(t, func() bool {
		s.Poll()
		return s.PendingCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, s.StatusBar(), "Fetched")
}

func TestSpawn_WithoutRepository(t *testing.T) {
	s := newMockState(t)
	dispatchAll(t, s, InputChar('f'))
	assert.Equal(t, "✗ No Git repository detected", s.StatusBar())
}
