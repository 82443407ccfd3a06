package config

import (
	"os"
	"path/filepath"
	"strings"
)

func EnvFlagEnabled(name string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func NoColor() bool {
	return EnvFlagEnabled("FORGE_NO_COLOR") || strings.TrimSpace(os.Getenv("NO_COLOR")) != ""
}

func TestModeEnabled() bool {
	return EnvFlagEnabled("FORGE_TEST_MODE")
}

// LogFile returns $FORGE_LOG_FILE or ~/.forge/forge.log.
func LogFile() (string, error) {
	if path := strings.TrimSpace(os.Getenv("FORGE_LOG_FILE")); path != "" {
		return path, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "forge.log"), nil
}
