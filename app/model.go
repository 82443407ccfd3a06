package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrbonezy/forge/ui"
	"github.com/mrbonezy/forge/watch"
)

const pollInterval = 100 * time.Millisecond

type pollTasksMsg time.Time

type workdirChangedMsg struct {
	watcher *watch.Watcher
}

// Model adapts State to bubbletea.
type Model struct {
	state   *State
	spinner spinner.Model
	width   int
	height  int
	watcher *watch.Watcher
	onQuit  func()
	done    bool
}

// NewModel wraps state. onQuit runs once when the program is about to exit,
// after the project has been saved.
func NewModel(state *State, onQuit func()) Model {
	m := Model{
		state:   state,
		spinner: newSpinner(),
		onQuit:  onQuit,
	}
	m.syncWatcher()
	return m
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return s
}

func (m Model) State() *State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, pollTasksCmd(), waitForWorkdirChange(m.watcher))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.state.Dispatch(DecodeKey(msg))
		return m, nil
	case tea.KeyMsg:
		autosync := m.state.Config().Autosync
		if m.state.Dispatch(DecodeKey(msg)) {
			m.shutdown()
			return m, tea.Quit
		}
		if m.state.Config().Autosync != autosync {
			return m, m.syncWatcher()
		}
		return m, nil
	case pollTasksMsg:
		m.state.Poll()
		return m, pollTasksCmd()
	case workdirChangedMsg:
		if msg.watcher != m.watcher {
			return m, nil
		}
		m.state.WorkdirChanged()
		return m, waitForWorkdirChange(m.watcher)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	snap := m.state.Snapshot(m.width, m.height, m.spinner.View())
	return ui.Render(snap, ui.StylesFor(m.state.Config().Theme))
}

// syncWatcher starts or stops the file watcher to match the autosync
// setting and returns the command that waits for its next event.
func (m *Model) syncWatcher() tea.Cmd {
	want := m.state.Config().Autosync && m.state.Workdir() != ""
	switch {
	case want && m.watcher == nil:
		w, err := watch.Start(m.state.Workdir(), watch.DefaultDebounce)
		if err != nil {
			m.state.log.Warn("start watcher", "workdir", m.state.Workdir(), "error", err)
			return nil
		}
		m.watcher = w
		return waitForWorkdirChange(w)
	case !want && m.watcher != nil:
		m.watcher.Stop()
		m.watcher = nil
	}
	return nil
}

func (m *Model) shutdown() {
	m.done = true
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	m.state.Save()
	if m.onQuit != nil {
		m.onQuit()
	}
}

func pollTasksCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollTasksMsg(t)
	})
}

func waitForWorkdirChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Events():
			return workdirChangedMsg{watcher: w}
		case <-w.Done():
			return nil
		}
	}
}
