// Package config loads and saves the user configuration stored under
// ~/.forge/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRemote       = "origin"
	DefaultHistoryLimit = 50
	DefaultLogLevel     = "info"

	ThemeDefault      = "default"
	ThemeHighContrast = "high-contrast"
)

type Config struct {
	Remote        string `yaml:"remote"`
	Theme         string `yaml:"theme"`
	Notifications bool   `yaml:"notifications"`
	Autosync      bool   `yaml:"autosync"`
	LogLevel      string `yaml:"log_level"`
	HistoryLimit  int    `yaml:"history_limit"`
}

func Default() Config {
	return Config{
		Remote:        DefaultRemote,
		Theme:         ThemeDefault,
		Notifications: true,
		Autosync:      false,
		LogLevel:      DefaultLogLevel,
		HistoryLimit:  DefaultHistoryLimit,
	}
}

// Load reads the config file. A missing file yields Default().
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Remote = strings.TrimSpace(c.Remote)
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme != ThemeHighContrast {
		c.Theme = ThemeDefault
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
}

func Exists() (bool, error) {
	path, err := Path()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg Config) error {
	cfg.normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func Path() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// HomeDir is $FORGE_HOME when set, otherwise ~/.forge.
func HomeDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("FORGE_HOME")); dir != "" {
		return dir, nil
	}
	home := strings.TrimSpace(os.Getenv("HOME"))
	if home == "" {
		return "", errors.New("HOME not set")
	}
	return filepath.Join(home, ".forge"), nil
}
