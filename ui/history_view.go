package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wrap"
)

func RenderCommitSelector(rows []CommitRow, cursor Cursor, width int, styles Styles) string {
	const (
		hashWidth   = 8
		dateWidth   = 19
		authorWidth = 16
	)
	summaryWidth := max(width-hashWidth-dateWidth-authorWidth-3, 10)
	var b strings.Builder
	header := formatCommitLine("Hash", "Date", "Author", "Message", hashWidth, dateWidth, authorWidth, summaryWidth)
	b.WriteString(styles.Header(header))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(styles.Disabled("No commits."))
		return b.String()
	}
	start, end := visibleRange(len(rows), cursor.Scroll)
	for i := start; i < end; i++ {
		row := rows[i]
		line := formatCommitLine(shortHash(row.Hash), row.Date, row.Author, row.Summary, hashWidth, dateWidth, authorWidth, summaryWidth)
		if i == cursor.Selected {
			b.WriteString(styles.Selected(line))
		} else {
			b.WriteString(styles.Normal(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCommitLine(hash string, date string, author string, summary string, hashWidth int, dateWidth int, authorWidth int, summaryWidth int) string {
	return PadOrTrim(hash, hashWidth) + " " +
		PadOrTrim(date, dateWidth) + " " +
		PadOrTrim(author, authorWidth) + " " +
		PadOrTrim(summary, summaryWidth)
}

// RenderCommitDetail shows the full message and changed files of one commit.
func RenderCommitDetail(row CommitRow, width int, styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Header("commit " + row.Hash))
	b.WriteString("\n")
	b.WriteString(styles.Secondary("Author: " + row.Author))
	b.WriteString("\n")
	b.WriteString(styles.Secondary("Date:   " + row.Date))
	b.WriteString("\n\n")
	b.WriteString(wrap.String(strings.TrimSpace(row.Message), max(width, 10)))
	b.WriteString("\n\n")
	b.WriteString(styles.Header(formatFilesLabel(len(row.Files))))
	for _, f := range row.Files {
		b.WriteString("\n")
		b.WriteString(Truncate("  "+f, width))
	}
	return b.String()
}

func formatFilesLabel(n int) string {
	switch {
	case n <= 0:
		return "No files changed"
	case n == 1:
		return "1 file changed"
	default:
		return fmt.Sprintf("%d files changed", n)
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
