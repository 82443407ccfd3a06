// Package app holds the interactive core of forge: key decoding, the pure
// reducer, the state it drives and the bubbletea model around them.
package app

import (
	"log/slog"
	"strings"

	"github.com/mrbonezy/forge/config"
	"github.com/mrbonezy/forge/gitclient"
	"github.com/mrbonezy/forge/logging"
	"github.com/mrbonezy/forge/project"
	"github.com/mrbonezy/forge/status"
	"github.com/mrbonezy/forge/tasks"
)

const readyMessage = "Ready | Press ? for help"

// GitClient is the part of gitclient.Client the foreground uses.
type GitClient interface {
	Workdir() string
	HeadBranch() (string, bool)
	ListChanges() ([]project.Change, error)
	StageFile(path string) error
	UnstageFile(path string) error
	CommitAll(message string) (string, error)
	ListBranches(local bool, remote bool) ([]gitclient.Branch, error)
	CreateBranch(name string) error
	DeleteBranch(name string) error
	CheckoutBranch(name string) error
	CommitHistory(limit int) ([]gitclient.Commit, error)
	Committers() ([]string, error)
}

// TaskRunner runs remote operations in the background.
type TaskRunner interface {
	Spawn(workdir string, op tasks.Op)
	TryRecv() (tasks.Result, bool)
	PendingCount() int
}

type Options struct {
	Store  *project.Store
	Git    GitClient
	Tasks  TaskRunner
	Config config.Config
	// Clipboard receives copied commit hashes.
	Clipboard  func(string) error
	SaveConfig func(config.Config) error
}

// State is everything the UI shows. Apply is its only mutator.
type State struct {
	store      *project.Store
	git        GitClient
	tasks      TaskRunner
	cfg        config.Config
	workdir    string
	copyText   func(string) error
	saveConfig func(config.Config) error
	log        *slog.Logger

	focus      Focus
	view       View
	showHelp   bool
	menuIndex  int
	project    int
	status     string
	completion string
	// inflight holds spawned ops without a result yet, oldest first.
	inflight []tasks.Op

	dashboard dashboardState
	changes   changesState
	history   historyState
	branches  branchState
	merge     mergeState
	board     boardState
	modules   moduleState
	settings  settingsState
}

func NewState(opts Options) *State {
	s := &State{
		store:      opts.Store,
		git:        opts.Git,
		tasks:      opts.Tasks,
		cfg:        opts.Config,
		copyText:   opts.Clipboard,
		saveConfig: opts.SaveConfig,
		log:        logging.With("app"),
		focus:      FocusView,
		view:       ViewDashboard,
		status:     readyMessage,
	}
	if s.cfg.Remote == "" {
		s.cfg.Remote = config.DefaultRemote
	}
	if s.cfg.HistoryLimit <= 0 {
		s.cfg.HistoryLimit = config.DefaultHistoryLimit
	}
	if s.git != nil {
		s.workdir = s.git.Workdir()
	}
	if s.store == nil {
		s.store = LoadStore(s.git)
	}
	s.dashboard.pane = ViewDashboard.defaultPaneRatio()
	s.changes.pane = ViewChanges.defaultPaneRatio()
	s.history.pane = ViewCommitHistory.defaultPaneRatio()
	s.branches.pane = ViewBranchManager.defaultPaneRatio()
	s.merge.pane = ViewMergeVisualizer.defaultPaneRatio()
	s.merge.resolutions = make(map[mergeKey]Resolution)
	s.modules.pane = ViewModuleManager.defaultPaneRatio()
	s.board.column = int(project.Current)
	return s
}

// LoadStore builds the project store for a session. With a repository it
// holds one project for the working copy, merged with any saved sidecars and
// with developers taken from the commit history. Without one it holds the
// demo project.
func LoadStore(git GitClient) *project.Store {
	log := logging.With("app")
	if git == nil {
		return project.NewStore(project.Demo())
	}
	workdir := git.Workdir()
	branch, _ := git.HeadBranch()
	store := project.NewStore(project.New(workdir, branch))
	if err := store.Load(workdir); err != nil {
		log.Debug("load sidecars", "workdir", workdir, "error", err)
	}
	if changes, err := git.ListChanges(); err == nil {
		store.Projects[0].Changes = changes
	} else {
		log.Debug("list changes", "error", err)
	}
	if names, err := git.Committers(); err == nil {
		if added := store.AutoPopulateDevelopers(0, names); added > 0 {
			log.Debug("added developers from history", "count", added)
		}
	} else {
		log.Debug("list committers", "error", err)
	}
	return store
}

func (s *State) Config() config.Config { return s.cfg }
func (s *State) Workdir() string       { return s.workdir }
func (s *State) View() View            { return s.view }
func (s *State) Focus() Focus          { return s.focus }
func (s *State) Status() string        { return s.status }

// Store is exposed for tests and for the final save on exit.
func (s *State) Store() *project.Store { return s.store }

// Context projects the state for the reducer.
func (s *State) Context() Context {
	p := s.activeProject()
	ctx := Context{
		Focus:        s.focus,
		View:         s.view,
		ShowHelp:     s.showHelp,
		SearchActive: s.dashboard.search,
		MenuIndex:    s.menuIndex,
		HasGitClient: s.git != nil,
		Remote:       s.cfg.Remote,

		ProjectIndex:   s.dashboard.list.Selected,
		ProjectCount:   len(s.filteredProjects()),
		ChangeIndex:    s.changes.list.Selected,
		CommitIndex:    s.history.list.Selected,
		CommitCount:    len(s.history.commits),
		BranchIndex:    s.branches.list.Selected,
		BranchCount:    len(s.branches.branches),
		MergeFileIndex: s.merge.list.Selected,
		MergeFocus:     s.merge.focus,
		BoardColumn:    s.board.column,
		BoardItem:      s.board.item,
		BoardColumnLen: len(s.columnModules(s.board.column)),
		ModuleIndex:    s.modules.modules.Selected,
		DeveloperIndex: s.modules.developers.Selected,
		SettingIndex:   s.settings.list.Selected,
		SettingCount:   settingCount,

		CommitMessageEmpty: s.changes.message == "",
		BranchInputEmpty:   strings.TrimSpace(s.branches.input) == "",
		ModuleInputEmpty:   strings.TrimSpace(s.modules.input) == "",

		BranchMode: s.branches.mode,
		ModuleMode: s.modules.mode,
		PaneRatio:  s.paneRatio(s.view),
	}
	if p != nil {
		ctx.ChangeCount = len(p.Changes)
		ctx.MergeFileCount = len(p.Changes)
		ctx.ModuleCount = len(p.Modules)
		ctx.DeveloperCount = len(p.Developers)
	}
	return ctx
}

// Dispatch runs one action through the reducer and applies the result. It
// reports whether the program should quit.
func (s *State) Dispatch(a Action) bool {
	res, u := Reduce(a, s.Context())
	s.Apply(res, u)
	return res.Quit
}

func (s *State) activeProject() *project.Project {
	return s.store.Project(s.project)
}

// filteredProjects is the dashboard list: store indices matching the search
// query.
func (s *State) filteredProjects() []int {
	return s.store.FilterByName(s.dashboard.query)
}

// syncActiveProject points the other views at the project under the
// dashboard cursor.
func (s *State) syncActiveProject() {
	filtered := s.filteredProjects()
	if len(filtered) == 0 {
		return
	}
	s.dashboard.list.ClampSelection(len(filtered))
	s.project = filtered[s.dashboard.list.Selected]
}

func (s *State) changeList() []project.Change {
	if p := s.activeProject(); p != nil {
		return p.Changes
	}
	return nil
}

func (s *State) selectedChange() (project.Change, bool) {
	changes := s.changeList()
	idx := s.changes.list.Selected
	if idx < 0 || idx >= len(changes) {
		return project.Change{}, false
	}
	return changes[idx], true
}

func (s *State) columnModules(column int) []project.Module {
	p := s.activeProject()
	if p == nil || column < 0 || column >= len(project.BoardColumns) {
		return nil
	}
	return p.ModulesWithStatus(project.BoardColumns[column])
}

func (s *State) selectedModule() (project.Module, bool) {
	p := s.activeProject()
	if p == nil {
		return project.Module{}, false
	}
	idx := s.modules.modules.Selected
	if idx < 0 || idx >= len(p.Modules) {
		return project.Module{}, false
	}
	return p.Modules[idx], true
}

func (s *State) selectedDeveloper() (project.Developer, bool) {
	p := s.activeProject()
	if p == nil {
		return project.Developer{}, false
	}
	idx := s.modules.developers.Selected
	if idx < 0 || idx >= len(p.Developers) {
		return project.Developer{}, false
	}
	return p.Developers[idx], true
}

func (s *State) selectedBranch() (gitclient.Branch, bool) {
	idx := s.branches.list.Selected
	if idx < 0 || idx >= len(s.branches.branches) {
		return gitclient.Branch{}, false
	}
	return s.branches.branches[idx], true
}

func (s *State) selectedCommit() (gitclient.Commit, bool) {
	idx := s.history.list.Selected
	if idx < 0 || idx >= len(s.history.commits) {
		return gitclient.Commit{}, false
	}
	return s.history.commits[idx], true
}

func (s *State) paneRatio(v View) int {
	switch v {
	case ViewDashboard:
		return s.dashboard.pane
	case ViewChanges:
		return s.changes.pane
	case ViewCommitHistory:
		return s.history.pane
	case ViewBranchManager:
		return s.branches.pane
	case ViewMergeVisualizer:
		return s.merge.pane
	case ViewModuleManager:
		return s.modules.pane
	}
	return 0
}

func (s *State) setPaneRatio(v View, ratio int) {
	ratio = clampPane(ratio)
	switch v {
	case ViewDashboard:
		s.dashboard.pane = ratio
	case ViewChanges:
		s.changes.pane = ratio
	case ViewCommitHistory:
		s.history.pane = ratio
	case ViewBranchManager:
		s.branches.pane = ratio
	case ViewMergeVisualizer:
		s.merge.pane = ratio
	case ViewModuleManager:
		s.modules.pane = ratio
	}
}

// StatusBar is the text shown at the bottom: pending progress first, then
// the last completion, then the regular status message.
func (s *State) StatusBar() string {
	if s.PendingCount() > 0 && len(s.inflight) > 0 {
		return status.Progress(s.inflight[0].ProgressMessage())
	}
	if s.completion != "" {
		return s.completion
	}
	return s.status
}

func (s *State) PendingCount() int {
	if s.tasks == nil {
		return 0
	}
	return s.tasks.PendingCount()
}

// Poll applies every finished background result, in arrival order, and
// returns how many there were.
func (s *State) Poll() int {
	if s.tasks == nil {
		return 0
	}
	n := 0
	for {
		res, ok := s.tasks.TryRecv()
		if !ok {
			return n
		}
		n++
		s.reconcile(res)
	}
}

func (s *State) reconcile(res tasks.Result) {
	s.log.Info("background op finished", "op", res.Op.String(), "ok", res.OK, "message", res.Message)
	s.dropInflight(res.Op)
	if !res.OK {
		s.completion = status.Error(res.Message)
		return
	}
	if res.Op.Kind == tasks.Pull {
		s.reloadChanges()
		if s.view == ViewCommitHistory {
			s.reloadHistory()
		}
	}
	if s.cfg.Notifications {
		s.completion = status.Success(res.Message)
		return
	}
	s.completion = ""
	s.status = s.StatusLine()
}

// dropInflight forgets the oldest pending op equal to op.
func (s *State) dropInflight(op tasks.Op) {
	for i, pending := range s.inflight {
		if pending == op {
			s.inflight = append(s.inflight[:i], s.inflight[i+1:]...)
			return
		}
	}
}

// WorkdirChanged reloads the change list after files changed on disk.
func (s *State) WorkdirChanged() {
	if s.git == nil {
		return
	}
	s.reloadChanges()
}

// Save writes the project sidecars. Errors are logged and dropped.
func (s *State) Save() {
	if s.workdir == "" {
		return
	}
	if err := s.store.Save(s.workdir); err != nil {
		s.log.Debug("save project", "workdir", s.workdir, "error", err)
	}
}
