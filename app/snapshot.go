package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mrbonezy/forge/project"
	"github.com/mrbonezy/forge/ui"
)

// Snapshot copies out what the current frame needs.
func (s *State) Snapshot(width int, height int, spinner string) ui.Snapshot {
	snap := ui.Snapshot{
		Width:       width,
		Height:      height,
		Menu:        viewNames[:],
		MenuIndex:   s.menuIndex,
		MenuFocused: s.focus == FocusMenu,
		Screen:      ui.Screen(s.view),
		NoRepo:      s.git == nil,
		ShowHelp:    s.showHelp,
		Status:      s.StatusBar(),
		Pending:     s.PendingCount(),
		Spinner:     spinner,
	}
	if snap.ShowHelp {
		snap.Help = helpSections(s.view)
	}
	p := s.activeProject()
	if p != nil {
		snap.ProjectName = p.Name
		snap.Branch = p.Branch
	}

	switch s.view {
	case ViewDashboard:
		snap.Dashboard = s.dashboardData(p)
	case ViewChanges:
		snap.Changes = s.changesData(p)
	case ViewCommitHistory:
		snap.History = s.historyData()
	case ViewBranchManager:
		snap.Branches = s.branchesData()
	case ViewMergeVisualizer:
		snap.Merge = s.mergeData(p)
	case ViewProjectBoard:
		snap.Board = s.boardData(p)
	case ViewModuleManager:
		snap.Modules = s.modulesData(p)
	case ViewSettings:
		snap.Settings = ui.SettingsData{
			Options:  settingLabels(s.cfg),
			Selected: s.settings.list.Selected,
		}
	}
	return snap
}

func cursor(l ListCursor) ui.Cursor {
	return ui.Cursor{Selected: l.Selected, Scroll: l.Scroll}
}

func (s *State) dashboardData(p *project.Project) ui.DashboardData {
	d := ui.DashboardData{
		Cursor:    cursor(s.dashboard.list),
		Pane:      s.dashboard.pane,
		Searching: s.dashboard.search,
		Query:     s.dashboard.query,
	}
	for _, idx := range s.filteredProjects() {
		fp := s.store.Project(idx)
		d.Projects = append(d.Projects, ui.ProjectRow{
			Name:     fp.Name,
			Branch:   fp.Branch,
			Modules:  len(fp.Modules),
			Changes:  len(fp.Changes),
			Progress: averageProgress(fp),
		})
	}
	if p != nil {
		d.Description = p.Description
		d.Modules = moduleRows(p)
		for _, dev := range p.Developers {
			d.Developers = append(d.Developers, dev.Name)
		}
	}
	return d
}

func averageProgress(p *project.Project) int {
	if len(p.Modules) == 0 {
		return 0
	}
	total := 0
	for _, m := range p.Modules {
		total += m.Progress
	}
	return total / len(p.Modules)
}

func moduleRow(p *project.Project, m project.Module) ui.ModuleRow {
	return ui.ModuleRow{
		Name:     m.Name,
		Owner:    p.OwnerName(m),
		Status:   m.Status.String(),
		Progress: m.Progress,
	}
}

func moduleRows(p *project.Project) []ui.ModuleRow {
	rows := make([]ui.ModuleRow, 0, len(p.Modules))
	for _, m := range p.Modules {
		rows = append(rows, moduleRow(p, m))
	}
	return rows
}

func (s *State) changesData(p *project.Project) ui.ChangesData {
	d := ui.ChangesData{
		Cursor:  cursor(s.changes.list),
		Pane:    s.changes.pane,
		Message: s.changes.message,
	}
	if p == nil {
		return d
	}
	for _, c := range p.Changes {
		d.Files = append(d.Files, ui.ChangeRow{Path: c.Path, Status: c.Status.String(), Staged: c.Staged})
	}
	if c, ok := s.selectedChange(); ok {
		d.Preview = c.DiffPreview
	}
	return d
}

func (s *State) historyData() ui.HistoryData {
	d := ui.HistoryData{
		Cursor: cursor(s.history.list),
		Pane:   s.history.pane,
	}
	for _, c := range s.history.commits {
		d.Commits = append(d.Commits, ui.CommitRow{
			Hash:    c.Hash,
			Author:  c.Author,
			Date:    c.Date(),
			Summary: c.Summary(),
			Message: c.Message,
			Files:   c.Files,
		})
	}
	return d
}

func (s *State) branchesData() ui.BranchesData {
	d := ui.BranchesData{
		Cursor:   cursor(s.branches.list),
		Pane:     s.branches.pane,
		Creating: s.branches.mode == BranchCreate,
		Input:    s.branches.input,
	}
	for _, b := range s.branches.branches {
		d.Branches = append(d.Branches, ui.BranchRow{Name: b.Name, Current: b.Current, Remote: b.Remote})
	}
	return d
}

func (s *State) mergeData(p *project.Project) ui.MergeData {
	d := ui.MergeData{
		Cursor: cursor(s.merge.list),
		Pane:   s.merge.pane,
		Focus:  s.merge.focus.String(),
	}
	if p == nil {
		return d
	}
	for i, c := range p.Changes {
		d.Files = append(d.Files, ui.MergeRow{
			Path:       c.Path,
			Status:     c.Status.String(),
			Resolution: s.merge.resolutions[mergeKey{project: s.project, file: i}].String(),
		})
	}
	if idx := s.merge.list.Selected; idx >= 0 && idx < len(p.Changes) {
		d.Local = p.Changes[idx].Local()
		d.Incoming = p.Changes[idx].Incoming()
	}
	return d
}

func (s *State) boardData(p *project.Project) ui.BoardData {
	d := ui.BoardData{Column: s.board.column, Item: s.board.item}
	for c, status := range project.BoardColumns {
		col := ui.BoardColumn{Title: status.String()}
		if p != nil {
			for _, m := range s.columnModules(c) {
				col.Cards = append(col.Cards, moduleRow(p, m))
			}
		}
		d.Columns = append(d.Columns, col)
	}
	return d
}

func (s *State) modulesData(p *project.Project) ui.ModulesData {
	d := ui.ModulesData{
		ModuleCursor:    cursor(s.modules.modules),
		DeveloperCursor: cursor(s.modules.developers),
		Pane:            s.modules.pane,
		Mode:            s.modules.mode.String(),
		ShowDevelopers:  s.modules.mode == DeveloperList || s.modules.mode == CreateDeveloper,
		Assigning:       s.modules.mode == AssignDeveloper,
		Editing:         s.modules.mode.takesInput(),
		Input:           s.modules.input,
	}
	if p == nil {
		return d
	}
	d.Modules = moduleRows(p)
	for _, dev := range p.Developers {
		d.Developers = append(d.Developers, dev.Name)
	}
	return d
}

func bindingHelp(bindings ...key.Binding) []ui.HelpBinding {
	out := make([]ui.HelpBinding, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, ui.HelpBinding{Key: h.Key, Desc: h.Desc})
	}
	return out
}

// helpSections lists the global bindings followed by the ones specific to v.
func helpSections(v View) []ui.HelpSection {
	sections := []ui.HelpSection{
		{
			Title: "Global",
			Bindings: bindingHelp(keys.Quit, keys.Back, keys.Help, keys.NextView,
				keys.Up, keys.Down, keys.PageUp, keys.PageDown, keys.PaneNarrow, keys.PaneWiden),
		},
	}
	var local []ui.HelpBinding
	switch v {
	case ViewDashboard:
		local = append(bindingHelp(keys.Select, keys.Search, keys.Fetch),
			ui.HelpBinding{Key: "f", Desc: "fetch"},
			ui.HelpBinding{Key: "r", Desc: "refresh"})
	case ViewChanges:
		local = append(bindingHelp(keys.ToggleStaging, keys.Select, keys.Backspace, keys.Fetch, keys.Push, keys.Pull),
			ui.HelpBinding{Key: "f / p", Desc: "fetch / push (empty message)"})
	case ViewCommitHistory:
		local = []ui.HelpBinding{
			{Key: "y", Desc: "copy commit hash"},
			{Key: "r", Desc: "refresh"},
		}
	case ViewBranchManager:
		local = append(bindingHelp(keys.Select),
			ui.HelpBinding{Key: "n", Desc: "new branch"},
			ui.HelpBinding{Key: "d", Desc: "delete branch"},
			ui.HelpBinding{Key: "r", Desc: "refresh"})
	case ViewMergeVisualizer:
		local = bindingHelp(keys.Left, keys.Right, keys.Select)
	case ViewProjectBoard:
		local = append(bindingHelp(keys.Left, keys.Right),
			ui.HelpBinding{Key: "↵", Desc: "advance module"})
	case ViewModuleManager:
		local = append(bindingHelp(keys.SwitchList, keys.Select),
			ui.HelpBinding{Key: "n", Desc: "new module / developer"},
			ui.HelpBinding{Key: "e", Desc: "rename module"},
			ui.HelpBinding{Key: "d", Desc: "delete"},
			ui.HelpBinding{Key: "a", Desc: "assign owner"})
	case ViewSettings:
		local = []ui.HelpBinding{{Key: "↵", Desc: "toggle setting"}}
	}
	if len(local) > 0 {
		sections = append(sections, ui.HelpSection{Title: v.String(), Bindings: local})
	}
	return sections
}
