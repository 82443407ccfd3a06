package app

import (
	"github.com/google/uuid"

	"github.com/mrbonezy/forge/gitclient"
)

// Window is the number of list rows assumed visible when keeping the
// selection on screen.
const Window = 10

const (
	minPaneRatio = 10
	maxPaneRatio = 90
)

// ListCursor is the selection and scroll offset of one list. Every list in
// the UI moves through these methods so the selection stays visible.
type ListCursor struct {
	Selected int
	Scroll   int
}

// NavigateUp moves up one row, stopping at the top. It reports whether the
// selection moved.
func (l *ListCursor) NavigateUp() bool {
	if l.Selected == 0 {
		return false
	}
	l.Selected--
	l.ensureVisible()
	return true
}

// NavigateDown moves down one row, stopping at length-1.
func (l *ListCursor) NavigateDown(length int) bool {
	if l.Selected >= length-1 {
		return false
	}
	l.Selected++
	l.ensureVisible()
	return true
}

func (l *ListCursor) ScrollUp(n int) {
	l.Scroll = max(l.Scroll-n, 0)
}

// ScrollDown never scrolls past the last full window.
func (l *ListCursor) ScrollDown(n int, length int, window int) {
	if length <= window {
		l.Scroll = 0
		return
	}
	l.Scroll = min(l.Scroll+n, length-window)
}

func (l *ListCursor) ClampSelection(length int) {
	l.Selected = clamp(l.Selected, 0, length-1)
	l.ensureVisible()
}

// Select jumps to idx, clamped to the list.
func (l *ListCursor) Select(idx int, length int) {
	l.Selected = idx
	l.ClampSelection(length)
}

func (l *ListCursor) Reset() {
	l.Selected = 0
	l.Scroll = 0
}

func (l *ListCursor) ensureVisible() {
	if l.Selected < l.Scroll {
		l.Scroll = l.Selected
	} else if l.Selected >= l.Scroll+Window {
		l.Scroll = l.Selected - (Window - 1)
	}
}

func clampPane(ratio int) int {
	return clamp(ratio, minPaneRatio, maxPaneRatio)
}

type dashboardState struct {
	list   ListCursor
	pane   int
	search bool
	query  string
}

type changesState struct {
	list    ListCursor
	pane    int
	message string
}

type historyState struct {
	list    ListCursor
	pane    int
	commits []gitclient.Commit
}

type branchState struct {
	list     ListCursor
	pane     int
	mode     BranchMode
	input    string
	branches []gitclient.Branch
}

type mergeState struct {
	list        ListCursor
	pane        int
	focus       MergeFocus
	resolutions map[mergeKey]Resolution
}

type boardState struct {
	column int
	item   int
}

type moduleState struct {
	modules    ListCursor
	developers ListCursor
	pane       int
	mode       ModuleMode
	input      string
	editing    uuid.UUID
}

type settingsState struct {
	list ListCursor
}

func popRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
