// Package ui draws forge screens. Everything here is a pure function of a
// Snapshot; nothing reads application state directly.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

const (
	ThemeDefault      = "default"
	ThemeHighContrast = "high-contrast"
)

type Styles struct {
	Header           func(string) string
	Normal           func(string) string
	Selected         func(string) string
	Disabled         func(string) string
	DisabledSelected func(string) string
	Secondary        func(string) string
	Banner           func(string) string
	Error            func(string) string
	Warn             func(string) string
	Success          func(string) string
	Input            func(string) string

	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
}

type palette struct {
	accent    lipgloss.Color
	bannerFg  lipgloss.Color
	normal    lipgloss.Color
	header    lipgloss.Color
	secondary lipgloss.Color
	disabled  lipgloss.Color
	errorFg   lipgloss.Color
	warn      lipgloss.Color
	success   lipgloss.Color
	border    lipgloss.Color
}

var (
	defaultPalette = palette{
		accent:    lipgloss.Color("#7D56F4"),
		bannerFg:  lipgloss.Color("#FFF7DB"),
		normal:    lipgloss.Color("251"),
		header:    lipgloss.Color("15"),
		secondary: lipgloss.Color("245"),
		disabled:  lipgloss.Color("241"),
		errorFg:   lipgloss.Color("1"),
		warn:      lipgloss.Color("3"),
		success:   lipgloss.Color("2"),
		border:    lipgloss.Color("240"),
	}
	highContrastPalette = palette{
		accent:    lipgloss.Color("11"),
		bannerFg:  lipgloss.Color("0"),
		normal:    lipgloss.Color("15"),
		header:    lipgloss.Color("15"),
		secondary: lipgloss.Color("14"),
		disabled:  lipgloss.Color("250"),
		errorFg:   lipgloss.Color("9"),
		warn:      lipgloss.Color("11"),
		success:   lipgloss.Color("10"),
		border:    lipgloss.Color("15"),
	}
)

// StylesFor picks the style set for a theme name. Unknown names get the
// default theme.
func StylesFor(theme string) Styles {
	if theme == ThemeHighContrast {
		return newStyles(highContrastPalette)
	}
	return newStyles(defaultPalette)
}

// SetupColor sets the colour profile lipgloss renders with. noColor forces
// plain ASCII output.
func SetupColor(noColor bool) termenv.Profile {
	profile := termenv.EnvColorProfile()
	if noColor {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)
	return profile
}

func newStyles(p palette) Styles {
	render := func(st lipgloss.Style) func(string) string {
		return func(s string) string { return st.Render(s) }
	}
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)
	return Styles{
		Header:           render(lipgloss.NewStyle().Foreground(p.header).Bold(true)),
		Normal:           render(lipgloss.NewStyle().Foreground(p.normal)),
		Selected:         render(lipgloss.NewStyle().Foreground(p.accent).Bold(true)),
		Disabled:         render(lipgloss.NewStyle().Foreground(p.disabled)),
		DisabledSelected: render(lipgloss.NewStyle().Foreground(p.accent).Bold(true)),
		Secondary:        render(lipgloss.NewStyle().Foreground(p.secondary)),
		Banner: render(lipgloss.NewStyle().
			Bold(true).
			Foreground(p.bannerFg).
			Background(p.accent).
			Padding(0, 1)),
		Error:   render(lipgloss.NewStyle().Foreground(p.errorFg).Bold(true)),
		Warn:    render(lipgloss.NewStyle().Foreground(p.warn).Bold(true)),
		Success: render(lipgloss.NewStyle().Foreground(p.success)),
		Input:   render(lipgloss.NewStyle().Foreground(p.header).Underline(true)),

		Pane:        pane,
		FocusedPane: pane.BorderForeground(p.accent),
	}
}

// PadOrTrim fits s into exactly width terminal cells.
func PadOrTrim(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		if width == 1 {
			return runewidth.Truncate(s, width, "")
		}
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Truncate cuts a possibly styled line to width cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
