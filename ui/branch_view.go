package ui

import "strings"

type BranchRow struct {
	Name    string
	Current bool
	Remote  bool
}

func RenderBranchSelector(rows []BranchRow, cursor Cursor, width int, styles Styles) string {
	const (
		markerWidth = 2
		kindWidth   = 8
	)
	nameWidth := max(width-markerWidth-kindWidth-4, 10)
	var b strings.Builder
	header := formatBranchLine("", "Branch", "Kind", markerWidth, nameWidth, kindWidth)
	b.WriteString(styles.Header(header))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(styles.Disabled("No branches."))
		return b.String()
	}
	start, end := visibleRange(len(rows), cursor.Scroll)
	for row := start; row < end; row++ {
		branch := rows[row]
		rowStyle := styles.Normal
		rowSelectedStyle := styles.Selected
		if branch.Remote {
			rowStyle = styles.Disabled
			rowSelectedStyle = styles.DisabledSelected
		}
		line := formatBranchLine(branchMarker(branch), branch.Name, branchKind(branch), markerWidth, nameWidth, kindWidth)
		if row == cursor.Selected {
			b.WriteString(rowSelectedStyle(line))
		} else {
			b.WriteString(rowStyle(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatBranchLine(marker string, name string, kind string, markerWidth int, nameWidth int, kindWidth int) string {
	return PadOrTrim(marker, markerWidth) + " " +
		PadOrTrim(name, nameWidth) + " " +
		PadOrTrim(kind, kindWidth)
}

func branchMarker(b BranchRow) string {
	if b.Current {
		return "*"
	}
	return ""
}

func branchKind(b BranchRow) string {
	if b.Remote {
		return "remote"
	}
	return "local"
}
