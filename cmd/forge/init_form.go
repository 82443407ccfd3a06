package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrbonezy/forge/config"
)

const (
	initRemoteKey        = "init_remote"
	initThemeKey         = "init_theme"
	initNotificationsKey = "init_notifications"
	initAutosyncKey      = "init_autosync"
)

func forgeHuhTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

func newInitForm(cfg *config.Config) *huh.Form {
	remote := huh.NewInput().
		Key(initRemoteKey).
		Title("Default remote").
		Inline(true).
		Value(&cfg.Remote).
		Validate(func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("remote name is required")
			}
			return nil
		})

	theme := huh.NewSelect[string]().
		Key(initThemeKey).
		Title("Theme").
		Options(
			huh.NewOption("Default", config.ThemeDefault),
			huh.NewOption("High contrast", config.ThemeHighContrast),
		).
		Value(&cfg.Theme)

	notifications := huh.NewConfirm().
		Key(initNotificationsKey).
		Title("Show a message when fetch, push or pull finishes?").
		Affirmative("Yes").
		Negative("No").
		Inline(true).
		Value(&cfg.Notifications)

	autosync := huh.NewConfirm().
		Key(initAutosyncKey).
		Title("Reload changes when files change on disk?").
		Affirmative("Yes").
		Negative("No").
		Inline(true).
		Value(&cfg.Autosync)

	return huh.NewForm(
		huh.NewGroup(remote, theme, notifications, autosync),
	).
		WithTheme(forgeHuhTheme()).
		WithShowHelp(false)
}

func runInit(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !config.TestModeEnabled() {
		if err := newInitForm(&cfg).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				_, err = fmt.Fprintln(w, "Cancelled")
				return err
			}
			return err
		}
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	path, err := config.Path()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Saved %s\n", path)
	return err
}
