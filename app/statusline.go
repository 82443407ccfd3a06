package app

import (
	"fmt"

	"github.com/mrbonezy/forge/project"
)

const notAvailable = "N/A"

// StatusLine describes the current selection of the active view. It is used
// whenever an action leaves no message of its own.
func (s *State) StatusLine() string {
	if s.focus == FocusMenu {
		return menuHelpMessage
	}
	switch s.view {
	case ViewDashboard:
		name := notAvailable
		if p := s.activeProject(); p != nil && len(s.filteredProjects()) > 0 {
			name = p.Name
		}
		return fmt.Sprintf("Project: %s (↑↓ Select, ↵ Open)", name)
	case ViewChanges:
		path := notAvailable
		if c, ok := s.selectedChange(); ok {
			path = c.Path
		}
		return fmt.Sprintf("Changes: %s (↑↓ Select file, ↵ Commit)", path)
	case ViewCommitHistory:
		label := notAvailable
		if c, ok := s.selectedCommit(); ok {
			label = c.ShortHash() + " " + c.Summary()
		}
		return fmt.Sprintf("History: %s (↑↓ Select, y Copy hash)", label)
	case ViewBranchManager:
		if s.branches.mode == BranchCreate {
			return fmt.Sprintf("New branch: %s (↵ Create, Esc Cancel)", s.branches.input)
		}
		name := notAvailable
		if b, ok := s.selectedBranch(); ok {
			name = b.Name
		}
		return fmt.Sprintf("Branch: %s (↵ Switch, n New, d Delete)", name)
	case ViewMergeVisualizer:
		return fmt.Sprintf("Merge: %s (←→ Pane, ↑↓ File)", s.merge.focus)
	case ViewProjectBoard:
		return fmt.Sprintf("Board: %s (←→ Column, ↑↓ Item)", boardColumnName(s.board.column))
	case ViewModuleManager:
		return s.moduleStatusLine()
	case ViewSettings:
		label := notAvailable
		labels := settingLabels(s.cfg)
		if idx := s.settings.list.Selected; idx >= 0 && idx < len(labels) {
			label = labels[idx]
		}
		return fmt.Sprintf("Settings: %s (↑↓ Select)", label)
	}
	return readyMessage
}

func (s *State) moduleStatusLine() string {
	switch s.modules.mode {
	case DeveloperList:
		name := notAvailable
		if d, ok := s.selectedDeveloper(); ok {
			name = d.Name
		}
		return fmt.Sprintf("Developer: %s (n New, d Delete, Shift+Tab Modules)", name)
	case AssignDeveloper:
		name := notAvailable
		if d, ok := s.selectedDeveloper(); ok {
			name = d.Name
		}
		return fmt.Sprintf("Assign to: %s (↵ Assign, Esc Cancel)", name)
	case CreateModule, EditModule, CreateDeveloper:
		return fmt.Sprintf("%s: %s (↵ Save, Esc Cancel)", s.modules.mode, s.modules.input)
	}
	name := notAvailable
	if m, ok := s.selectedModule(); ok {
		name = m.Name
	}
	return fmt.Sprintf("Module: %s (n New, e Edit, d Delete, a Assign)", name)
}

func boardColumnName(column int) string {
	if column < 0 || column >= len(project.BoardColumns) {
		return notAvailable
	}
	return project.BoardColumns[column].String()
}
