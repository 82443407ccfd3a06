package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// ListWindow matches the number of rows the app keeps in view.
	ListWindow = 10

	menuWidth     = 16
	defaultWidth  = 100
	defaultHeight = 30
	minPaneWidth  = 14
)

// Render draws a whole frame.
func Render(s Snapshot, st Styles) string {
	width := s.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := s.Height
	if height <= 0 {
		height = defaultHeight
	}
	bodyHeight := max(height-3, ListWindow+4)

	var body string
	if s.ShowHelp {
		body = box("Help", renderHelp(s.Help, st), width, bodyHeight, true, st)
	} else {
		menu := box("Menu", renderMenu(s, st), menuWidth, bodyHeight, s.MenuFocused, st)
		content := renderScreen(s, st, width-menuWidth, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, menu, content)
	}

	return strings.Join([]string{
		renderHeader(s, st, width),
		body,
		renderStatusBar(s, st, width),
	}, "\n")
}

func renderHeader(s Snapshot, st Styles, width int) string {
	var b strings.Builder
	b.WriteString(st.Banner("FORGE"))
	b.WriteString("  ")
	if s.NoRepo {
		b.WriteString(st.Warn("No Git repository detected"))
		b.WriteString("  ")
	}
	if s.ProjectName != "" {
		b.WriteString(st.Header(s.ProjectName))
	}
	if s.Branch != "" {
		b.WriteString(st.Secondary(" on " + s.Branch))
	}
	return Truncate(b.String(), width)
}

func renderMenu(s Snapshot, st Styles) string {
	var b strings.Builder
	for i, item := range s.Menu {
		marker := "  "
		if int(s.Screen) == i {
			marker = "• "
		}
		line := PadOrTrim(marker+item, menuWidth-4)
		switch {
		case i == s.MenuIndex && s.MenuFocused:
			b.WriteString(st.Selected(line))
		case int(s.Screen) == i:
			b.WriteString(st.Header(line))
		default:
			b.WriteString(st.Normal(line))
		}
		if i < len(s.Menu)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderStatusBar(s Snapshot, st Styles, width int) string {
	msg := s.Status
	switch {
	case strings.HasPrefix(msg, "✗"):
		msg = st.Error(msg)
	case strings.HasPrefix(msg, "✓"):
		msg = st.Success(msg)
	}
	left := msg
	if s.Pending > 0 && s.Spinner != "" {
		left = s.Spinner + " " + msg
	}
	right := ""
	if s.Pending > 0 {
		right = st.Secondary(fmt.Sprintf("%d pending", s.Pending))
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return Truncate(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderHelp(sections []HelpSection, st Styles) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(st.Header(section.Title))
		for _, binding := range section.Bindings {
			b.WriteString("\n  ")
			b.WriteString(st.Selected(PadOrTrim(binding.Key, 12)))
			b.WriteString(" ")
			b.WriteString(st.Normal(binding.Desc))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(st.Secondary("Press ? or Esc to close."))
	return b.String()
}

func renderScreen(s Snapshot, st Styles, width int, height int) string {
	switch s.Screen {
	case ScreenDashboard:
		return renderDashboard(s.Dashboard, st, width, height)
	case ScreenChanges:
		return renderChanges(s.Changes, st, width, height)
	case ScreenHistory:
		return renderHistory(s.History, st, width, height)
	case ScreenBranches:
		return renderBranches(s.Branches, st, width, height)
	case ScreenMerge:
		return renderMerge(s.Merge, st, width, height)
	case ScreenBoard:
		return renderBoard(s.Board, st, width, height)
	case ScreenModules:
		return renderModules(s.Modules, st, width, height)
	case ScreenSettings:
		return renderSettings(s.Settings, st, width, height)
	}
	return ""
}

// box draws a bordered pane of exactly width x height cells.
func box(title string, body string, width int, height int, focused bool, st Styles) string {
	style := st.Pane
	if focused {
		style = st.FocusedPane
	}
	inner := max(width-4, 1)
	lines := strings.Split(body, "\n")
	limit := max(height-3, 1)
	if len(lines) > limit {
		lines = lines[:limit]
	}
	for i, line := range lines {
		lines[i] = Truncate(line, inner)
	}
	content := st.Header(Truncate(title, inner)) + "\n" + strings.Join(lines, "\n")
	return style.Width(max(width-2, 1)).Height(max(height-2, 1)).Render(content)
}

// splitWidth divides total cells by a percentage ratio, keeping both sides
// usable.
func splitWidth(total int, ratio int) (int, int) {
	left := total * ratio / 100
	left = clampInt(left, minPaneWidth, max(total-minPaneWidth, minPaneWidth))
	return left, max(total-left, 0)
}

// visibleRange returns the rows shown for a list of n rows scrolled to
// scroll.
func visibleRange(n int, scroll int) (int, int) {
	start := clampInt(scroll, 0, max(n-1, 0))
	end := min(start+ListWindow, n)
	return start, end
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func progressBar(progress int, width int) string {
	progress = clampInt(progress, 0, 100)
	filled := width * progress / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]" + fmt.Sprintf(" %3d%%", progress)
}

func colorDiff(preview string, st Styles) string {
	lines := strings.Split(strings.TrimRight(preview, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = st.Header(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = st.Success(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = st.Error(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = st.Secondary(line)
		}
	}
	return strings.Join(lines, "\n")
}
