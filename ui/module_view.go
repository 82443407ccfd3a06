package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 10

func renderModules(d ModulesData, st Styles, width int, height int) string {
	leftWidth, rightWidth := splitWidth(width, d.Pane)

	modules := RenderModuleSelector(d.Modules, d.ModuleCursor, leftWidth-4, !d.ShowDevelopers && !d.Assigning, st)
	if d.Editing {
		modules += "\n\n" + st.Header(d.Mode) + "\n" + st.Input(d.Input+"_")
	}

	var devs strings.Builder
	if d.Assigning {
		devs.WriteString(st.Secondary("Pick an owner, ↵ to assign"))
		devs.WriteString("\n")
	}
	if len(d.Developers) == 0 {
		devs.WriteString(st.Disabled("No developers."))
	}
	devFocused := d.ShowDevelopers || d.Assigning
	start, end := visibleRange(len(d.Developers), d.DeveloperCursor.Scroll)
	for i := start; i < end; i++ {
		line := PadOrTrim(d.Developers[i], max(rightWidth-4, 1))
		if devFocused && i == d.DeveloperCursor.Selected {
			devs.WriteString(st.Selected(line))
		} else {
			devs.WriteString(st.Normal(line))
		}
		devs.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Modules", modules, leftWidth, height, !devFocused, st),
		box("Developers", strings.TrimRight(devs.String(), "\n"), rightWidth, height, devFocused, st),
	)
}

// RenderModuleSelector lists modules with owner, status and progress.
// highlight controls whether the cursor row is drawn as selected.
func RenderModuleSelector(rows []ModuleRow, cursor Cursor, width int, highlight bool, st Styles) string {
	if len(rows) == 0 {
		return st.Disabled("No modules.")
	}
	var b strings.Builder
	start, end := visibleRange(len(rows), cursor.Scroll)
	for i := start; i < end; i++ {
		line := formatModuleLine(rows[i], width)
		if highlight && i == cursor.Selected {
			b.WriteString(st.Selected(line))
		} else {
			b.WriteString(st.Normal(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatModuleLine(m ModuleRow, width int) string {
	const (
		ownerWidth  = 12
		statusWidth = 11
	)
	// bar is brackets plus " 100%"
	barWidth := progressWidth + 7
	nameWidth := max(width-ownerWidth-statusWidth-barWidth-3, 6)
	owner := m.Owner
	if owner == "" {
		owner = "-"
	}
	return PadOrTrim(m.Name, nameWidth) + " " +
		PadOrTrim(owner, ownerWidth) + " " +
		PadOrTrim(m.Status, statusWidth) + " " +
		progressBar(m.Progress, progressWidth)
}
