package app

import (
	"fmt"

	"github.com/mrbonezy/forge/config"
	"github.com/mrbonezy/forge/status"
)

const (
	settingTheme = iota
	settingNotifications
	settingAutosync
	settingCount
)

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

func themeLabel(theme string) string {
	if theme == config.ThemeHighContrast {
		return "High Contrast"
	}
	return "Default"
}

// settingLabels lists the settings as shown in the Settings view.
func settingLabels(cfg config.Config) []string {
	return []string{
		"Theme: " + themeLabel(cfg.Theme),
		"Notifications: " + onOff(cfg.Notifications),
		"Autosync: " + onOff(cfg.Autosync),
	}
}

func (s *State) toggleSetting() string {
	switch s.settings.list.Selected {
	case settingTheme:
		if s.cfg.Theme == config.ThemeHighContrast {
			s.cfg.Theme = config.ThemeDefault
		} else {
			s.cfg.Theme = config.ThemeHighContrast
		}
	case settingNotifications:
		s.cfg.Notifications = !s.cfg.Notifications
	case settingAutosync:
		s.cfg.Autosync = !s.cfg.Autosync
	default:
		return ""
	}
	if s.saveConfig != nil {
		if err := s.saveConfig(s.cfg); err != nil {
			s.log.Debug("save config", "error", err)
		}
	}
	label := settingLabels(s.cfg)[s.settings.list.Selected]
	return status.Success(fmt.Sprintf("Set %s", label))
}
