package app

type View int

const (
	ViewDashboard View = iota
	ViewChanges
	ViewCommitHistory
	ViewBranchManager
	ViewMergeVisualizer
	ViewProjectBoard
	ViewModuleManager
	ViewSettings
)

// MenuLen is the number of menu entries, one per view.
const MenuLen = 8

var viewNames = [MenuLen]string{
	"Dashboard",
	"Changes",
	"History",
	"Branches",
	"Merge",
	"Board",
	"Modules",
	"Settings",
}

func (v View) String() string {
	if v < 0 || int(v) >= MenuLen {
		return "Unknown"
	}
	return viewNames[v]
}

// Next follows the fixed view cycle and wraps back to Dashboard.
func (v View) Next() View {
	return View((int(v) + 1) % MenuLen)
}

func (v View) MenuIndex() int {
	return int(v)
}

// ViewAt returns the view behind a menu index, clamping out of range values.
func ViewAt(idx int) View {
	return View(clamp(idx, 0, MenuLen-1))
}

// hasPane reports whether the view has a resizable split.
func (v View) hasPane() bool {
	switch v {
	case ViewDashboard, ViewChanges, ViewCommitHistory, ViewBranchManager, ViewMergeVisualizer, ViewModuleManager:
		return true
	}
	return false
}

func (v View) defaultPaneRatio() int {
	switch v {
	case ViewDashboard:
		return 40
	case ViewChanges:
		return 35
	case ViewMergeVisualizer:
		return 30
	default:
		return 50
	}
}

type Focus int

const (
	FocusView Focus = iota
	FocusMenu
)

func (f Focus) String() string {
	if f == FocusMenu {
		return "Menu"
	}
	return "View"
}

type BranchMode int

const (
	BranchList BranchMode = iota
	BranchCreate
)

type ModuleMode int

const (
	ModuleList ModuleMode = iota
	DeveloperList
	CreateModule
	EditModule
	CreateDeveloper
	AssignDeveloper
)

// takesInput reports whether the mode edits the module input buffer.
func (m ModuleMode) takesInput() bool {
	return m == CreateModule || m == EditModule || m == CreateDeveloper
}

// listMode is where Esc returns to from m.
func (m ModuleMode) listMode() ModuleMode {
	if m == CreateDeveloper || m == DeveloperList {
		return DeveloperList
	}
	return ModuleList
}

func (m ModuleMode) String() string {
	switch m {
	case DeveloperList:
		return "Developers"
	case CreateModule:
		return "New module"
	case EditModule:
		return "Edit module"
	case CreateDeveloper:
		return "New developer"
	case AssignDeveloper:
		return "Assign"
	default:
		return "Modules"
	}
}

type MergeFocus int

const (
	MergeFiles MergeFocus = iota
	MergeLocal
	MergeIncoming
)

func (f MergeFocus) Next() MergeFocus {
	return MergeFocus((int(f) + 1) % 3)
}

func (f MergeFocus) Prev() MergeFocus {
	return MergeFocus((int(f) + 2) % 3)
}

func (f MergeFocus) String() string {
	switch f {
	case MergeLocal:
		return "Local"
	case MergeIncoming:
		return "Incoming"
	default:
		return "Files"
	}
}

// Resolution is the side accepted for a file in the merge view.
type Resolution int

const (
	ResolvedLocal Resolution = iota + 1
	ResolvedIncoming
)

func (r Resolution) String() string {
	switch r {
	case ResolvedLocal:
		return "local"
	case ResolvedIncoming:
		return "incoming"
	}
	return ""
}

type mergeKey struct {
	project int
	file    int
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func ptr[T any](v T) *T {
	return &v
}
