package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionBack
	ActionNextView
	ActionNavigateUp
	ActionNavigateDown
	ActionNavigateLeft
	ActionNavigateRight
	ActionScrollPageUp
	ActionScrollPageDown
	ActionSelect
	ActionHelp
	ActionSearch
	ActionInputChar
	ActionBackspace
	ActionToggleStaging
	ActionFetch
	ActionPush
	ActionPull
	ActionPaneNarrow
	ActionPaneWiden
	ActionSwitchModuleList
	ActionTerminalResized
)

var actionNames = map[ActionKind]string{
	ActionNone:             "none",
	ActionQuit:             "quit",
	ActionBack:             "back",
	ActionNextView:         "next-view",
	ActionNavigateUp:       "up",
	ActionNavigateDown:     "down",
	ActionNavigateLeft:     "left",
	ActionNavigateRight:    "right",
	ActionScrollPageUp:     "page-up",
	ActionScrollPageDown:   "page-down",
	ActionSelect:           "select",
	ActionHelp:             "help",
	ActionSearch:           "search",
	ActionInputChar:        "input",
	ActionBackspace:        "backspace",
	ActionToggleStaging:    "toggle-staging",
	ActionFetch:            "fetch",
	ActionPush:             "push",
	ActionPull:             "pull",
	ActionPaneNarrow:       "pane-narrow",
	ActionPaneWiden:        "pane-widen",
	ActionSwitchModuleList: "switch-module-list",
	ActionTerminalResized:  "resize",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "unknown"
}

// Action is one decoded key press. Rune is set for InputChar and for actions
// that came from a printable key (k, j, h, l, space) so text fields can take
// those letters back.
type Action struct {
	Kind ActionKind
	Rune rune
}

func InputChar(c rune) Action {
	return Action{Kind: ActionInputChar, Rune: c}
}

func (a Action) String() string {
	if a.Kind == ActionInputChar {
		return a.Kind.String() + "(" + string(a.Rune) + ")"
	}
	return a.Kind.String()
}

type keyMap struct {
	Back          key.Binding
	Quit          key.Binding
	Help          key.Binding
	Search        key.Binding
	Pull          key.Binding
	Fetch         key.Binding
	Push          key.Binding
	NextView      key.Binding
	SwitchList    key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	PaneNarrow    key.Binding
	PaneWiden     key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Select        key.Binding
	Backspace     key.Binding
	ToggleStaging key.Binding
}

var keys = keyMap{
	Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back / menu")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Search:        key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("Ctrl+f", "search projects")),
	Pull:          key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("Ctrl+l", "pull")),
	Fetch:         key.NewBinding(key.WithKeys("alt+f"), key.WithHelp("Alt+f", "fetch")),
	Push:          key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("Alt+p", "push")),
	NextView:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "next view")),
	SwitchList:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("Shift+Tab", "modules / developers")),
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:         key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	PaneNarrow:    key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("Alt+←", "narrow pane")),
	PaneWiden:     key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("Alt+→", "widen pane")),
	PageUp:        key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "scroll up")),
	PageDown:      key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "scroll down")),
	Select:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
	Backspace:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete char")),
	ToggleStaging: key.NewBinding(key.WithKeys(" "), key.WithHelp("Space", "stage / unstage")),
}

// DecodeKey maps a terminal message to an Action. It keeps no state.
func DecodeKey(msg tea.Msg) Action {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return Action{Kind: ActionTerminalResized}
	case tea.KeyMsg:
		return decodeKeyMsg(msg)
	default:
		return Action{Kind: ActionNone}
	}
}

func decodeKeyMsg(msg tea.KeyMsg) Action {
	if msg.Paste {
		return Action{Kind: ActionNone}
	}
	var r rune
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		r = msg.Runes[0]
	}
	if msg.Type == tea.KeySpace {
		r = ' '
	}

	switch {
	case key.Matches(msg, keys.Back):
		return Action{Kind: ActionBack}
	case key.Matches(msg, keys.Quit):
		return Action{Kind: ActionQuit}
	case key.Matches(msg, keys.Help):
		return Action{Kind: ActionHelp}
	case key.Matches(msg, keys.Search):
		return Action{Kind: ActionSearch}
	case key.Matches(msg, keys.Pull):
		return Action{Kind: ActionPull}
	case key.Matches(msg, keys.Fetch):
		return Action{Kind: ActionFetch}
	case key.Matches(msg, keys.Push):
		return Action{Kind: ActionPush}
	case key.Matches(msg, keys.NextView):
		return Action{Kind: ActionNextView}
	case key.Matches(msg, keys.SwitchList):
		return Action{Kind: ActionSwitchModuleList}
	case key.Matches(msg, keys.PaneNarrow):
		return Action{Kind: ActionPaneNarrow}
	case key.Matches(msg, keys.PaneWiden):
		return Action{Kind: ActionPaneWiden}
	case key.Matches(msg, keys.Up):
		return Action{Kind: ActionNavigateUp, Rune: r}
	case key.Matches(msg, keys.Down):
		return Action{Kind: ActionNavigateDown, Rune: r}
	case key.Matches(msg, keys.Left):
		return Action{Kind: ActionNavigateLeft, Rune: r}
	case key.Matches(msg, keys.Right):
		return Action{Kind: ActionNavigateRight, Rune: r}
	case key.Matches(msg, keys.PageUp):
		return Action{Kind: ActionScrollPageUp}
	case key.Matches(msg, keys.PageDown):
		return Action{Kind: ActionScrollPageDown}
	case key.Matches(msg, keys.Select):
		return Action{Kind: ActionSelect}
	case key.Matches(msg, keys.Backspace):
		return Action{Kind: ActionBackspace}
	case key.Matches(msg, keys.ToggleStaging) || r == ' ':
		return Action{Kind: ActionToggleStaging, Rune: ' '}
	}
	if r != 0 {
		return InputChar(r)
	}
	return Action{Kind: ActionNone}
}
