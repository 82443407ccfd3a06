package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderDashboard(d DashboardData, st Styles, width int, height int) string {
	leftWidth, rightWidth := splitWidth(width, d.Pane)

	var list strings.Builder
	if d.Searching {
		list.WriteString(st.Input("/ " + d.Query))
		list.WriteString("\n")
	}
	list.WriteString(RenderProjectSelector(d.Projects, d.Cursor, leftWidth-4, st))

	var detail strings.Builder
	if d.Description != "" {
		detail.WriteString(st.Secondary(d.Description))
		detail.WriteString("\n\n")
	}
	detail.WriteString(st.Header("Modules"))
	if len(d.Modules) == 0 {
		detail.WriteString("\n")
		detail.WriteString(st.Disabled("No modules."))
	}
	for _, m := range d.Modules {
		detail.WriteString("\n")
		detail.WriteString(formatModuleLine(m, rightWidth-4))
	}
	detail.WriteString("\n\n")
	detail.WriteString(st.Header("Developers"))
	if len(d.Developers) == 0 {
		detail.WriteString("\n")
		detail.WriteString(st.Disabled("No developers."))
	}
	for _, name := range d.Developers {
		detail.WriteString("\n  ")
		detail.WriteString(name)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Projects", list.String(), leftWidth, height, true, st),
		box("Details", detail.String(), rightWidth, height, false, st),
	)
}

// RenderProjectSelector lists projects with their branch and progress.
func RenderProjectSelector(rows []ProjectRow, cursor Cursor, width int, st Styles) string {
	const (
		branchWidth = 14
		pctWidth    = 5
	)
	nameWidth := max(width-branchWidth-pctWidth-2, 8)
	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString(st.Disabled("No projects."))
		return b.String()
	}
	start, end := visibleRange(len(rows), cursor.Scroll)
	for i := start; i < end; i++ {
		row := rows[i]
		line := PadOrTrim(row.Name, nameWidth) + " " +
			PadOrTrim(row.Branch, branchWidth) + " " +
			fmt.Sprintf("%4d%%", row.Progress)
		if i == cursor.Selected {
			b.WriteString(st.Selected(line))
		} else {
			b.WriteString(st.Normal(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderChanges(d ChangesData, st Styles, width int, height int) string {
	leftWidth, rightWidth := splitWidth(width, d.Pane)
	inner := leftWidth - 4

	var files strings.Builder
	if len(d.Files) == 0 {
		files.WriteString(st.Disabled("Working tree clean."))
	}
	start, end := visibleRange(len(d.Files), d.Cursor.Scroll)
	for i := start; i < end; i++ {
		f := d.Files[i]
		marker := "[ ]"
		if f.Staged {
			marker = "[x]"
		}
		line := marker + " " + PadOrTrim(f.Status, 9) + " " + PadOrTrim(f.Path, max(inner-14, 4))
		if i == d.Cursor.Selected {
			files.WriteString(st.Selected(line))
		} else {
			files.WriteString(st.Normal(line))
		}
		files.WriteString("\n")
	}
	files.WriteString("\n")
	files.WriteString(st.Header("Commit message"))
	files.WriteString("\n")
	if d.Message == "" {
		files.WriteString(st.Disabled("Type to write a message, ↵ to commit"))
	} else {
		files.WriteString(st.Input(d.Message + "_"))
	}

	preview := d.Preview
	if preview == "" {
		preview = st.Disabled("No preview.")
	} else {
		preview = colorDiff(preview, st)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Files", files.String(), leftWidth, height, true, st),
		box("Diff", preview, rightWidth, height, false, st),
	)
}

func renderHistory(d HistoryData, st Styles, width int, height int) string {
	leftWidth, rightWidth := splitWidth(width, d.Pane)
	detail := st.Disabled("No commit selected.")
	if d.Cursor.Selected >= 0 && d.Cursor.Selected < len(d.Commits) {
		detail = RenderCommitDetail(d.Commits[d.Cursor.Selected], rightWidth-4, st)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Commits", RenderCommitSelector(d.Commits, d.Cursor, leftWidth-4, st), leftWidth, height, true, st),
		box("Details", detail, rightWidth, height, false, st),
	)
}

func renderBranches(d BranchesData, st Styles, width int, height int) string {
	leftWidth, rightWidth := splitWidth(width, d.Pane)
	var side strings.Builder
	if d.Creating {
		side.WriteString(st.Header("New branch"))
		side.WriteString("\n")
		side.WriteString(st.Input(d.Input + "_"))
		side.WriteString("\n\n")
		side.WriteString(st.Secondary("↵ create, Esc cancel"))
	} else {
		current := "detached"
		for _, b := range d.Branches {
			if b.Current {
				current = b.Name
				break
			}
		}
		side.WriteString(st.Header("Current"))
		side.WriteString("\n  ")
		side.WriteString(current)
		side.WriteString("\n\n")
		side.WriteString(st.Secondary("↵ switch, n new, d delete"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Branches", RenderBranchSelector(d.Branches, d.Cursor, leftWidth-4, st), leftWidth, height, !d.Creating, st),
		box("Actions", side.String(), rightWidth, height, d.Creating, st),
	)
}

func renderMerge(d MergeData, st Styles, width int, height int) string {
	filesWidth, rest := splitWidth(width, d.Pane)
	localWidth := rest / 2
	incomingWidth := rest - localWidth

	var files strings.Builder
	if len(d.Files) == 0 {
		files.WriteString(st.Disabled("No conflicts."))
	}
	start, end := visibleRange(len(d.Files), d.Cursor.Scroll)
	for i := start; i < end; i++ {
		f := d.Files[i]
		marker := " "
		switch f.Resolution {
		case "local":
			marker = "L"
		case "incoming":
			marker = "I"
		}
		line := marker + " " + PadOrTrim(f.Path, max(filesWidth-6, 4))
		if i == d.Cursor.Selected {
			files.WriteString(st.Selected(line))
		} else {
			files.WriteString(st.Normal(line))
		}
		files.WriteString("\n")
	}

	local := d.Local
	if local == "" {
		local = st.Disabled("Nothing to show.")
	}
	incoming := d.Incoming
	if incoming == "" {
		incoming = st.Disabled("Nothing to show.")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Files", strings.TrimRight(files.String(), "\n"), filesWidth, height, d.Focus == "Files", st),
		box("Local", local, localWidth, height, d.Focus == "Local", st),
		box("Incoming", incoming, incomingWidth, height, d.Focus == "Incoming", st),
	)
}

func renderBoard(d BoardData, st Styles, width int, height int) string {
	if len(d.Columns) == 0 {
		return box("Board", st.Disabled("No modules."), width, height, true, st)
	}
	colWidth := width / len(d.Columns)
	cols := make([]string, 0, len(d.Columns))
	for c, column := range d.Columns {
		w := colWidth
		if c == len(d.Columns)-1 {
			w = width - colWidth*(len(d.Columns)-1)
		}
		var b strings.Builder
		if len(column.Cards) == 0 {
			b.WriteString(st.Disabled("Empty"))
		}
		for i, card := range column.Cards {
			line := PadOrTrim(card.Name, max(w-4, 1))
			if c == d.Column && i == d.Item {
				b.WriteString(st.Selected(line))
			} else {
				b.WriteString(st.Normal(line))
			}
			b.WriteString("\n")
			owner := card.Owner
			if owner == "" {
				owner = "unassigned"
			}
			b.WriteString(st.Secondary("  " + owner + fmt.Sprintf(" %d%%", card.Progress)))
			b.WriteString("\n")
		}
		title := fmt.Sprintf("%s (%d)", column.Title, len(column.Cards))
		cols = append(cols, box(title, strings.TrimRight(b.String(), "\n"), w, height, c == d.Column, st))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderSettings(d SettingsData, st Styles, width int, height int) string {
	var b strings.Builder
	for i, option := range d.Options {
		line := PadOrTrim(option, max(width-8, 1))
		if i == d.Selected {
			b.WriteString(st.Selected("> " + line))
		} else {
			b.WriteString(st.Normal("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Secondary("↵ toggle"))
	return box("Settings", b.String(), width, height, true, st)
}
