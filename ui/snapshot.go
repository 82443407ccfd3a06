package ui

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenChanges
	ScreenHistory
	ScreenBranches
	ScreenMerge
	ScreenBoard
	ScreenModules
	ScreenSettings
)

// Snapshot is everything a frame needs. It is built fresh for every render
// and never shared with the state it came from.
type Snapshot struct {
	Width  int
	Height int

	Menu        []string
	MenuIndex   int
	MenuFocused bool
	Screen      Screen

	ProjectName string
	Branch      string
	NoRepo      bool

	ShowHelp bool
	Help     []HelpSection

	Status  string
	Spinner string
	Pending int

	Dashboard DashboardData
	Changes   ChangesData
	History   HistoryData
	Branches  BranchesData
	Merge     MergeData
	Board     BoardData
	Modules   ModulesData
	Settings  SettingsData
}

// Cursor is a list's selected row and first visible row.
type Cursor struct {
	Selected int
	Scroll   int
}

type HelpBinding struct {
	Key  string
	Desc string
}

type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

type ProjectRow struct {
	Name     string
	Branch   string
	Modules  int
	Changes  int
	Progress int
}

type DashboardData struct {
	Projects    []ProjectRow
	Cursor      Cursor
	Pane        int
	Searching   bool
	Query       string
	Description string
	Modules     []ModuleRow
	Developers  []string
}

type ChangeRow struct {
	Path   string
	Status string
	Staged bool
}

type ChangesData struct {
	Files   []ChangeRow
	Cursor  Cursor
	Pane    int
	Message string
	Preview string
}

type CommitRow struct {
	Hash    string
	Author  string
	Date    string
	Summary string
	Message string
	Files   []string
}

type HistoryData struct {
	Commits []CommitRow
	Cursor  Cursor
	Pane    int
}

type BranchesData struct {
	Branches []BranchRow
	Cursor   Cursor
	Pane     int
	Creating bool
	Input    string
}

type MergeRow struct {
	Path       string
	Status     string
	Resolution string
}

type MergeData struct {
	Files    []MergeRow
	Cursor   Cursor
	Pane     int
	Focus    string
	Local    string
	Incoming string
}

type ModuleRow struct {
	Name     string
	Owner    string
	Status   string
	Progress int
}

type BoardColumn struct {
	Title string
	Cards []ModuleRow
}

type BoardData struct {
	Columns []BoardColumn
	Column  int
	Item    int
}

type ModulesData struct {
	Modules         []ModuleRow
	Developers      []string
	ModuleCursor    Cursor
	DeveloperCursor Cursor
	Pane            int
	Mode            string
	ShowDevelopers  bool
	Assigning       bool
	Editing         bool
	Input           string
}

type SettingsData struct {
	Options  []string
	Selected int
}
