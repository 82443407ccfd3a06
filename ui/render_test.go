package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func plainStyles() Styles {
	id := func(s string) string { return s }
	pane := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	return Styles{
		Header:           id,
		Normal:           id,
		Selected:         id,
		Disabled:         id,
		DisabledSelected: id,
		Secondary:        id,
		Banner:           id,
		Error:            id,
		Warn:             id,
		Success:          id,
		Input:            id,
		Pane:             pane,
		FocusedPane:      pane,
	}
}

func baseSnapshot() Snapshot {
	return Snapshot{
		Width:       120,
		Height:      30,
		Menu:        []string{"Dashboard", "Changes", "History", "Branches", "Merge", "Board", "Modules", "Settings"},
		ProjectName: "forge",
		Branch:      "main",
		Status:      "Ready | Press ? for help",
	}
}

func TestPadOrTrim(t *testing.T) {
	if got := PadOrTrim("abc", 5); got != "abc  " {
		t.Fatalf("expected padded value, got %q", got)
	}
	if got := PadOrTrim("abcdef", 4); runewidth.StringWidth(got) != 4 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected trimmed value with tail, got %q", got)
	}
	if got := PadOrTrim("abc", 0); got != "" {
		t.Fatalf("expected empty for zero width, got %q", got)
	}
}

func TestVisibleRange(t *testing.T) {
	cases := []struct {
		n, scroll  int
		start, end int
	}{
		{0, 0, 0, 0},
		{3, 0, 0, 3},
		{25, 5, 5, 15},
		{25, 20, 20, 25},
		{4, 9, 3, 4},
	}
	for _, tc := range cases {
		start, end := visibleRange(tc.n, tc.scroll)
		if start != tc.start || end != tc.end {
			t.Fatalf("visibleRange(%d, %d) = %d,%d; want %d,%d", tc.n, tc.scroll, start, end, tc.start, tc.end)
		}
	}
}

func TestSplitWidth(t *testing.T) {
	left, right := splitWidth(100, 40)
	if left != 40 || right != 60 {
		t.Fatalf("expected 40/60, got %d/%d", left, right)
	}
	left, right = splitWidth(100, 5)
	if left != minPaneWidth || left+right != 100 {
		t.Fatalf("expected left pane floor, got %d/%d", left, right)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50, 10); got != "[█████░░░░░]  50%" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := progressBar(150, 4); got != "[████] 100%" {
		t.Fatalf("expected clamped bar, got %q", got)
	}
}

func TestRender_HeaderMenuAndStatus(t *testing.T) {
	s := baseSnapshot()
	s.Dashboard = DashboardData{
		Projects: []ProjectRow{{Name: "forge", Branch: "main", Progress: 40}},
		Pane:     40,
	}
	out := Render(s, plainStyles())
	for _, want := range []string{"FORGE", "forge", "on main", "Dashboard", "Settings", "Ready | Press ? for help", "Projects"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in frame:\n%s", want, out)
		}
	}
}

func TestRender_PendingShowsSpinner(t *testing.T) {
	s := baseSnapshot()
	s.Status = "Fetching from origin..."
	s.Spinner = "⣾"
	s.Pending = 1
	out := Render(s, plainStyles())
	if !strings.Contains(out, "⣾ Fetching from origin...") {
		t.Fatalf("expected spinner before progress message:\n%s", out)
	}
	if !strings.Contains(out, "1 pending") {
		t.Fatalf("expected pending count:\n%s", out)
	}
}

func TestRender_HelpOverlay(t *testing.T) {
	s := baseSnapshot()
	s.ShowHelp = true
	s.Help = []HelpSection{{Title: "Global", Bindings: []HelpBinding{{Key: "Tab", Desc: "next view"}}}}
	out := Render(s, plainStyles())
	if !strings.Contains(out, "Global") || !strings.Contains(out, "next view") {
		t.Fatalf("expected help content:\n%s", out)
	}
	if strings.Contains(out, "Projects") {
		t.Fatalf("help should replace the screen:\n%s", out)
	}
}

func TestRender_Changes(t *testing.T) {
	s := baseSnapshot()
	s.Screen = ScreenChanges
	s.Changes = ChangesData{
		Files:   []ChangeRow{{Path: "main.go", Status: "Modified", Staged: true}, {Path: "go.mod", Status: "Added"}},
		Pane:    35,
		Message: "fix bug",
		Preview: "--- a/main.go\n+++ b/main.go\n-old\n+new",
	}
	out := Render(s, plainStyles())
	for _, want := range []string{"[x] Modified", "[ ] Added", "fix bug_", "+new"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in changes screen:\n%s", want, out)
		}
	}
}

func TestRender_MergeMarksResolutions(t *testing.T) {
	s := baseSnapshot()
	s.Screen = ScreenMerge
	s.Merge = MergeData{
		Files: []MergeRow{
			{Path: "a.go", Resolution: "local"},
			{Path: "b.go", Resolution: "incoming"},
			{Path: "c.go"},
		},
		Pane:     30,
		Focus:    "Local",
		Local:    "local text",
		Incoming: "incoming text",
	}
	out := Render(s, plainStyles())
	for _, want := range []string{"L a.go", "I b.go", "  c.go", "local text", "incoming text"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in merge screen:\n%s", want, out)
		}
	}
}

func TestRender_BoardColumns(t *testing.T) {
	s := baseSnapshot()
	s.Screen = ScreenBoard
	s.Board = BoardData{
		Columns: []BoardColumn{
			{Title: "Pending"},
			{Title: "Current", Cards: []ModuleRow{{Name: "Parser", Owner: "ana", Progress: 40}}},
			{Title: "Completed"},
		},
		Column: 1,
	}
	out := Render(s, plainStyles())
	for _, want := range []string{"Pending (0)", "Current (1)", "Completed (0)", "Parser", "ana 40%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in board:\n%s", want, out)
		}
	}
}

func TestRender_ModulesInput(t *testing.T) {
	s := baseSnapshot()
	s.Screen = ScreenModules
	s.Modules = ModulesData{
		Modules:    []ModuleRow{{Name: "Parser", Status: "Current", Progress: 10}},
		Developers: []string{"ana", "bo"},
		Pane:       50,
		Mode:       "New module",
		Editing:    true,
		Input:      "Lexer",
	}
	out := Render(s, plainStyles())
	for _, want := range []string{"Parser", "ana", "bo", "New module", "Lexer_"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in modules screen:\n%s", want, out)
		}
	}
}

func TestRender_Settings(t *testing.T) {
	s := baseSnapshot()
	s.Screen = ScreenSettings
	s.Settings = SettingsData{Options: []string{"Theme: Default", "Notifications: On"}, Selected: 1}
	out := Render(s, plainStyles())
	if !strings.Contains(out, "> Notifications: On") {
		t.Fatalf("expected selected option marker:\n%s", out)
	}
}
