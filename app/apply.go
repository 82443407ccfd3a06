package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mrbonezy/forge/gitclient"
	"github.com/mrbonezy/forge/project"
	"github.com/mrbonezy/forge/status"
	"github.com/mrbonezy/forge/tasks"
)

const noRepositoryMessage = "No Git repository detected"

// Apply carries out a StateUpdate. Direct assignments come first, then
// command markers. When neither the reducer nor a command produced a
// message, the view's status line is rebuilt.
func (s *State) Apply(res ActionResult, u StateUpdate) {
	if u.IsEmpty() && res.Message == "" {
		return
	}
	s.completion = ""
	msg := res.Message

	if u.Focus != nil {
		s.focus = *u.Focus
	}
	if u.ShowHelp != nil {
		s.showHelp = *u.ShowHelp
	}
	s.applySearch(u)
	if u.MenuIndex != nil {
		s.menuIndex = clamp(*u.MenuIndex, 0, MenuLen-1)
	}
	if u.View != nil {
		s.view = *u.View
		s.enterView(s.view)
	}
	s.applySelections(u)
	s.applyBuffers(u)
	if u.BranchMode != nil {
		s.branches.mode = *u.BranchMode
	}
	if u.ModuleMode != nil {
		s.modules.mode = *u.ModuleMode
		if !s.modules.mode.takesInput() {
			s.modules.editing = uuid.Nil
		}
	}
	if u.ScrollDelta != 0 {
		s.scrollActive(u.ScrollDelta)
	}
	if u.PaneRatio != nil {
		s.setPaneRatio(s.view, *u.PaneRatio)
	}

	if out := s.runCommands(u); out != "" {
		msg = out
	}
	if msg == "" {
		msg = s.StatusLine()
	}
	s.status = msg
}

func (s *State) applySearch(u StateUpdate) {
	changed := false
	if u.SearchActive != nil {
		s.dashboard.search = *u.SearchActive
	}
	if u.SearchBuffer != nil {
		s.dashboard.query = *u.SearchBuffer
		changed = true
	}
	if u.SearchAppend != nil {
		s.dashboard.query += string(*u.SearchAppend)
		changed = true
	}
	if u.SearchPop {
		s.dashboard.query = popRune(s.dashboard.query)
		changed = true
	}
	if !changed {
		return
	}
	filtered := s.filteredProjects()
	if pos := slices.Index(filtered, s.project); pos >= 0 {
		s.dashboard.list.Select(pos, len(filtered))
		return
	}
	s.dashboard.list.ClampSelection(len(filtered))
	s.syncActiveProject()
}

func (s *State) applySelections(u StateUpdate) {
	p := s.activeProject()
	changeCount, moduleCount, developerCount := 0, 0, 0
	if p != nil {
		changeCount = len(p.Changes)
		moduleCount = len(p.Modules)
		developerCount = len(p.Developers)
	}

	if u.ProjectIndex != nil {
		s.dashboard.list.Select(*u.ProjectIndex, len(s.filteredProjects()))
		s.syncActiveProject()
	}
	if u.ClampSelections {
		s.clampForProject()
	}
	if u.ChangeIndex != nil {
		s.changes.list.Select(*u.ChangeIndex, changeCount)
	}
	if u.CommitIndex != nil {
		s.history.list.Select(*u.CommitIndex, len(s.history.commits))
	}
	if u.BranchIndex != nil {
		s.branches.list.Select(*u.BranchIndex, len(s.branches.branches))
	}
	if u.MergeFileIndex != nil {
		s.merge.list.Select(*u.MergeFileIndex, changeCount)
	}
	if u.ModuleIndex != nil {
		s.modules.modules.Select(*u.ModuleIndex, moduleCount)
	}
	if u.DeveloperIndex != nil {
		s.modules.developers.Select(*u.DeveloperIndex, developerCount)
	}
	if u.SettingIndex != nil {
		s.settings.list.Select(*u.SettingIndex, settingCount)
	}
	if u.BoardColumn != nil {
		s.board.column = ((*u.BoardColumn % 3) + 3) % 3
		s.clampBoardItem()
	}
	if u.BoardItem != nil {
		s.board.item = *u.BoardItem
		s.clampBoardItem()
	}
	if u.MergeFocus != nil {
		s.merge.focus = *u.MergeFocus
	}
}

// clampForProject keeps every project-dependent cursor inside the active
// project's lists.
func (s *State) clampForProject() {
	p := s.activeProject()
	if p == nil {
		return
	}
	s.changes.list.ClampSelection(len(p.Changes))
	s.merge.list.ClampSelection(len(p.Changes))
	s.modules.modules.ClampSelection(len(p.Modules))
	s.modules.developers.ClampSelection(len(p.Developers))
	s.clampBoardItem()
}

func (s *State) clampBoardItem() {
	s.board.item = clamp(s.board.item, 0, len(s.columnModules(s.board.column))-1)
}

func (s *State) applyBuffers(u StateUpdate) {
	if u.CommitMessageAppend != nil {
		s.changes.message += string(*u.CommitMessageAppend)
	}
	if u.CommitMessagePop {
		s.changes.message = popRune(s.changes.message)
	}
	if u.CommitMessageClear {
		s.changes.message = ""
	}
	if u.BranchInputClear {
		s.branches.input = ""
	}
	if u.BranchInputAppend != nil {
		s.branches.input += string(*u.BranchInputAppend)
	}
	if u.BranchInputPop {
		s.branches.input = popRune(s.branches.input)
	}
	if u.ModuleInputClear {
		s.modules.input = ""
	}
	if u.ModuleInputAppend != nil {
		s.modules.input += string(*u.ModuleInputAppend)
	}
	if u.ModuleInputPop {
		s.modules.input = popRune(s.modules.input)
	}
}

func (s *State) scrollActive(delta int) {
	var (
		list   *ListCursor
		length int
	)
	switch s.view {
	case ViewDashboard:
		list, length = &s.dashboard.list, len(s.filteredProjects())
	case ViewChanges:
		list, length = &s.changes.list, len(s.changeList())
	case ViewMergeVisualizer:
		list, length = &s.merge.list, len(s.changeList())
	case ViewCommitHistory:
		list, length = &s.history.list, len(s.history.commits)
	default:
		return
	}
	if delta < 0 {
		list.ScrollUp(-delta)
		return
	}
	list.ScrollDown(delta, length, Window)
}

// enterView refreshes the caches a view reads when it becomes active.
func (s *State) enterView(v View) {
	switch v {
	case ViewChanges:
		s.reloadChanges()
	case ViewCommitHistory:
		s.reloadHistory()
	case ViewBranchManager:
		s.reloadBranches()
	case ViewMergeVisualizer:
		s.merge.list.ClampSelection(len(s.changeList()))
	case ViewProjectBoard:
		s.clampBoardItem()
	case ViewModuleManager:
		s.clampForProject()
	}
}

func (s *State) reloadChanges() bool {
	p := s.activeProject()
	if s.git == nil || p == nil {
		return false
	}
	changes, err := s.git.ListChanges()
	if err != nil {
		s.log.Debug("list changes", "error", err)
		return false
	}
	p.Changes = changes
	if branch, ok := s.git.HeadBranch(); ok {
		p.Branch = branch
	}
	s.changes.list.ClampSelection(len(changes))
	s.merge.list.ClampSelection(len(changes))
	return true
}

func (s *State) reloadHistory() bool {
	if s.git == nil {
		s.history.commits = nil
		s.history.list.Reset()
		return false
	}
	commits, err := s.git.CommitHistory(s.cfg.HistoryLimit)
	if err != nil {
		s.log.Debug("commit history", "error", err)
		return false
	}
	s.history.commits = commits
	s.history.list.ClampSelection(len(commits))
	return true
}

func (s *State) reloadBranches() bool {
	if s.git == nil {
		s.branches.branches = nil
		s.branches.list.Reset()
		return false
	}
	branches, err := s.git.ListBranches(true, true)
	if err != nil {
		s.log.Debug("list branches", "error", err)
		return false
	}
	s.branches.branches = branches
	s.branches.list.ClampSelection(len(branches))
	return true
}

func (s *State) runCommands(u StateUpdate) string {
	var msg string
	set := func(m string) {
		if m != "" {
			msg = m
		}
	}
	if u.ToggleStagingRequested {
		set(s.toggleStaging())
	}
	if u.CommitRequested {
		set(s.commit())
	}
	if u.RefreshRequested {
		set(s.refresh())
	}
	if u.CopyCommitHashRequested {
		set(s.copyCommitHash())
	}
	if u.BranchCreateRequested {
		set(s.createBranch())
	}
	if u.BranchDeleteRequested {
		set(s.deleteBranch())
	}
	if u.BranchSwitchRequested {
		set(s.switchBranch())
	}
	if u.ModuleEditStarted {
		s.startModuleEdit()
	}
	if u.ModuleCreateRequested {
		set(s.createModule())
	}
	if u.ModuleUpdateRequested {
		set(s.updateModule())
	}
	if u.ModuleDeleteRequested {
		set(s.deleteModule())
	}
	if u.ModuleAssignRequested {
		set(s.assignModule())
	}
	if u.DeveloperCreateRequested {
		set(s.createDeveloper())
	}
	if u.DeveloperDeleteRequested {
		set(s.deleteDeveloper())
	}
	if u.ToggleModuleList {
		if s.modules.mode == DeveloperList {
			s.modules.mode = ModuleList
		} else {
			s.modules.mode = DeveloperList
		}
	}
	if u.MoveBoardItem {
		set(s.moveBoardItem())
	}
	if u.AcceptMergePane {
		set(s.acceptMergePane())
	}
	if u.ToggleSetting {
		set(s.toggleSetting())
	}
	if u.FetchRequested {
		set(s.spawn(tasks.FetchOp(s.cfg.Remote)))
	}
	if u.PushRequested {
		set(s.spawn(tasks.PushOp(s.cfg.Remote)))
	}
	if u.PullRequested {
		set(s.spawn(tasks.PullOp(s.cfg.Remote)))
	}
	return msg
}

func (s *State) persist() {
	s.Save()
}

func (s *State) gitError(err error) string {
	s.log.Debug("git operation failed", "error", err)
	return status.Error(gitclient.ExplainError(err))
}

func (s *State) spawn(op tasks.Op) string {
	if s.git == nil || s.tasks == nil {
		return status.Error(noRepositoryMessage)
	}
	s.tasks.Spawn(s.workdir, op)
	s.inflight = append(s.inflight, op)
	return ""
}

func (s *State) toggleStaging() string {
	change, ok := s.selectedChange()
	if !ok {
		return ""
	}
	if s.git == nil {
		p := s.activeProject()
		p.Changes[s.changes.list.Selected].Staged = !change.Staged
		if change.Staged {
			return status.Info("Unstaged " + change.Path + " (mock)")
		}
		return status.Info("Staged " + change.Path + " (mock)")
	}

	var err error
	verb := "Staged"
	if change.Staged {
		verb = "Unstaged"
		err = s.git.UnstageFile(change.Path)
	} else {
		err = s.git.StageFile(change.Path)
	}
	if err != nil {
		return s.gitError(err)
	}
	s.reloadChanges()
	return status.Success(verb + " " + change.Path)
}

func (s *State) commit() string {
	if s.git == nil {
		return status.Error(noRepositoryMessage)
	}
	hash, err := s.git.CommitAll(s.changes.message)
	if err != nil {
		return s.gitError(err)
	}
	summary := strings.TrimSpace(s.changes.message)
	s.changes.message = ""
	if idx := s.store.BumpProgressOnCommit(s.project); idx >= 0 {
		s.log.Debug("bumped module progress", "module", s.activeProject().Modules[idx].Name)
	}
	s.persist()
	s.reloadChanges()
	if s.history.commits != nil {
		s.reloadHistory()
	}
	return status.Success(fmt.Sprintf("Committed %s: %s", gitclient.Commit{Hash: hash}.ShortHash(), summary))
}

func (s *State) refresh() string {
	if s.git == nil {
		return status.Info(noRepositoryMessage)
	}
	var ok bool
	switch s.view {
	case ViewCommitHistory:
		ok = s.reloadHistory()
	case ViewBranchManager:
		ok = s.reloadBranches()
	default:
		ok = s.reloadChanges()
	}
	if !ok {
		return status.Error("Refresh failed")
	}
	return status.Success("Refreshed")
}

func (s *State) copyCommitHash() string {
	commit, ok := s.selectedCommit()
	if !ok {
		return ""
	}
	if s.copyText == nil {
		return status.Error("Clipboard unavailable")
	}
	if err := s.copyText(commit.Hash); err != nil {
		s.log.Debug("clipboard", "error", err)
		return status.Error("Clipboard unavailable")
	}
	return status.Success("Copied " + commit.ShortHash() + " to clipboard")
}

func (s *State) createBranch() string {
	if s.git == nil {
		return status.Error(noRepositoryMessage)
	}
	name := strings.TrimSpace(s.branches.input)
	if err := s.git.CreateBranch(name); err != nil {
		return s.gitError(err)
	}
	s.branches.input = ""
	s.branches.mode = BranchList
	s.reloadBranches()
	for i, b := range s.branches.branches {
		if !b.Remote && b.Name == name {
			s.branches.list.Select(i, len(s.branches.branches))
			break
		}
	}
	return status.Success("Created branch " + name)
}

func (s *State) deleteBranch() string {
	if s.git == nil {
		return status.Error(noRepositoryMessage)
	}
	b, ok := s.selectedBranch()
	if !ok {
		return "No branch selected"
	}
	if b.Remote {
		return status.Error("Remote branches cannot be deleted here")
	}
	if b.Current {
		return s.gitError(gitclient.ErrDeleteCurrentBranch)
	}
	if err := s.git.DeleteBranch(b.Name); err != nil {
		return s.gitError(err)
	}
	s.reloadBranches()
	return status.Success("Deleted branch " + b.Name)
}

func (s *State) switchBranch() string {
	if s.git == nil {
		return status.Error(noRepositoryMessage)
	}
	b, ok := s.selectedBranch()
	if !ok {
		return "No branch selected"
	}
	if b.Remote {
		return status.Error("Cannot switch to remote branch " + b.Name + ". Create a local branch first.")
	}
	if b.Current {
		return status.Info("Already on branch " + b.Name)
	}
	if err := s.git.CheckoutBranch(b.Name); err != nil {
		if errors.Is(err, gitclient.ErrAlreadyOnBranch) {
			return status.Info("Already on branch " + b.Name)
		}
		return s.gitError(err)
	}
	s.reloadBranches()
	s.reloadChanges()
	return status.Success("Switched to " + b.Name)
}

func (s *State) startModuleEdit() {
	m, ok := s.selectedModule()
	if !ok {
		s.modules.mode = ModuleList
		return
	}
	s.modules.editing = m.ID
	s.modules.input = m.Name
}

func (s *State) createModule() string {
	name := strings.TrimSpace(s.modules.input)
	if _, ok := s.store.AddModule(s.project, name); !ok {
		return status.Error("Could not create module")
	}
	s.modules.input = ""
	s.modules.mode = ModuleList
	n := len(s.activeProject().Modules)
	s.modules.modules.Select(n-1, n)
	s.persist()
	return status.Success("Created module " + name)
}

func (s *State) updateModule() string {
	name := strings.TrimSpace(s.modules.input)
	if !s.store.UpdateModule(s.project, s.modules.editing, name) {
		return status.Error("Module no longer exists")
	}
	s.modules.input = ""
	s.modules.mode = ModuleList
	s.modules.editing = uuid.Nil
	s.persist()
	return status.Success("Renamed module to " + name)
}

func (s *State) deleteModule() string {
	m, ok := s.selectedModule()
	if !ok {
		return "No modules"
	}
	if !s.store.DeleteModule(s.project, m.ID) {
		return status.Error("Module no longer exists")
	}
	s.clampForProject()
	s.persist()
	return status.Success("Deleted module " + m.Name)
}

func (s *State) assignModule() string {
	m, ok := s.selectedModule()
	if !ok {
		return "No modules"
	}
	dev, ok := s.selectedDeveloper()
	if !ok {
		return "No developers to assign"
	}
	if !s.store.AssignOwner(s.project, m.ID, &dev.ID) {
		return status.Error("Could not assign " + m.Name)
	}
	s.modules.mode = ModuleList
	s.persist()
	return status.Success("Assigned " + m.Name + " to " + dev.Name)
}

func (s *State) createDeveloper() string {
	name := strings.TrimSpace(s.modules.input)
	if _, ok := s.store.AddDeveloper(s.project, name); !ok {
		return status.Error("Could not add developer")
	}
	s.modules.input = ""
	s.modules.mode = DeveloperList
	n := len(s.activeProject().Developers)
	s.modules.developers.Select(n-1, n)
	s.persist()
	return status.Success("Added developer " + name)
}

func (s *State) deleteDeveloper() string {
	dev, ok := s.selectedDeveloper()
	if !ok {
		return "No developers"
	}
	if !s.store.DeleteDeveloper(s.project, dev.ID) {
		return status.Error("Developer no longer exists")
	}
	s.clampForProject()
	s.persist()
	return status.Success("Removed developer " + dev.Name)
}

func (s *State) moveBoardItem() string {
	column := s.columnModules(s.board.column)
	if s.board.item < 0 || s.board.item >= len(column) {
		return ""
	}
	m := column[s.board.item]
	next, changed := s.store.AdvanceModule(s.project, m.ID)
	if !changed {
		return status.Info(m.Name + " is already " + project.Completed.String())
	}
	s.clampBoardItem()
	s.persist()
	return status.Success(fmt.Sprintf("Moved %s to %s", m.Name, next))
}

func (s *State) acceptMergePane() string {
	var side Resolution
	switch s.merge.focus {
	case MergeLocal:
		side = ResolvedLocal
	case MergeIncoming:
		side = ResolvedIncoming
	default:
		return ""
	}
	idx := s.merge.list.Selected
	if idx < 0 || idx >= len(s.changeList()) {
		return "No file selected"
	}
	s.merge.resolutions[mergeKey{project: s.project, file: idx}] = side
	return status.Success("Accepted " + side.String() + " version")
}
