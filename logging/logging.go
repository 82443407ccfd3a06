// Package logging sets up the process-wide slog logger. While the terminal UI
// owns the screen, records go to a file or are discarded.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitFile points the default logger at path. An empty path discards output.
func InitFile(path string, level slog.Level) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if strings.TrimSpace(path) == "" {
		setLocked(io.Discard, level)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		setLocked(io.Discard, level)
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		setLocked(io.Discard, level)
		return err
	}
	logFile = f
	setLocked(f, level)
	return nil
}

// InitWriter is used by non-interactive commands and tests.
func InitWriter(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	setLocked(w, level)
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	setLocked(io.Discard, slog.LevelInfo)
}

func setLocked(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// With returns a logger tagged with a subsystem name.
func With(subsystem string) *slog.Logger {
	return slog.Default().With("subsystem", subsystem)
}
