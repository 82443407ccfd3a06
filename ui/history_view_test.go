package ui

import (
	"strings"
	"testing"
)

func TestFormatFilesLabel(t *testing.T) {
	if got := formatFilesLabel(0); got != "No files changed" {
		t.Fatalf("expected no files label, got %q", got)
	}
	if got := formatFilesLabel(1); got != "1 file changed" {
		t.Fatalf("expected singular label, got %q", got)
	}
	if got := formatFilesLabel(4); got != "4 files changed" {
		t.Fatalf("expected plural label, got %q", got)
	}
}

func TestShortHash(t *testing.T) {
	if got := shortHash("0123456789abcdef"); got != "0123456" {
		t.Fatalf("expected 7 chars, got %q", got)
	}
	if got := shortHash("abc"); got != "abc" {
		t.Fatalf("expected short hash untouched, got %q", got)
	}
}

func TestRenderCommitSelector_EmptyAndWindowed(t *testing.T) {
	styles := plainStyles()
	if out := RenderCommitSelector(nil, Cursor{}, 80, styles); !strings.Contains(out, "No commits.") {
		t.Fatalf("expected empty message, got %q", out)
	}

	var rows []CommitRow
	for i := 0; i < 20; i++ {
		rows = append(rows, CommitRow{Hash: strings.Repeat(string(rune('a'+i)), 10), Summary: "msg"})
	}
	out := RenderCommitSelector(rows, Cursor{Selected: 12, Scroll: 5}, 80, styles)
	if strings.Contains(out, "aaaaaaa") {
		t.Fatalf("rows above the scroll offset should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "mmmmmmm") {
		t.Fatalf("selected row should be visible:\n%s", out)
	}
	if strings.Contains(out, "ppppppp") {
		t.Fatalf("rows past the window should be hidden:\n%s", out)
	}
}
