// Package watch signals when files in a working copy change. It backs the
// autosync setting.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mrbonezy/forge/logging"
	"github.com/mrbonezy/forge/project"
)

// DefaultDebounce is the quiet period before a burst of events is reported.
const DefaultDebounce = 600 * time.Millisecond

var skipDirs = map[string]struct{}{
	project.SidecarName: {},
	"node_modules":      {},
	"vendor":            {},
}

// Watcher coalesces filesystem events under a working copy into single
// signals on Events.
type Watcher struct {
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	events   chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	paths map[string]struct{}
}

// Start watches root recursively plus the .git directory itself, so
// staging and commits made elsewhere are noticed too.
func Start(root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		fsw:      fsw,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		paths:    make(map[string]struct{}),
	}
	w.addTree(root)
	w.addDir(filepath.Join(root, ".git"))
	go w.run()
	return w, nil
}

// Events yields one value per debounced burst of changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Done is closed once Stop has been called.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsw.Close()
	})
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.signal()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.With("watch").Debug("watcher error", "err", err)
		}
	}
}

func (w *Watcher) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if _, skip := skipDirs[parts[0]]; skip {
		return false
	}
	if parts[0] == ".git" {
		// Only the index and HEAD matter; lock files and objects churn.
		return len(parts) == 2 && (parts[1] == "index" || parts[1] == "HEAD")
	}
	return true
}

func (w *Watcher) maybeWatchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addTree(path)
}

func (w *Watcher) addTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != w.root {
			if _, skip := skipDirs[name]; skip || name == ".git" {
				return filepath.SkipDir
			}
		}
		w.addDir(path)
		return nil
	})
}

func (w *Watcher) addDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		logging.With("watch").Debug("watch add failed", "path", path, "err", err)
		return
	}
	w.paths[path] = struct{}{}
}
