package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 30 * time.Millisecond

func waitEvent(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change signal")
	}
}

func TestWatcher_SignalsOnFileWrite(t *testing.T) {
	root := t.TempDir()
	w, err := Start(root, testDebounce)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))
	waitEvent(t, w)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	root := t.TempDir()
	w, err := Start(root, 100*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte{byte(i)}, 0o644))
	}
	waitEvent(t, w)
	select {
	case <-w.Events():
		t.Fatal("burst should produce a single signal")
	case <-time.After(250 * time.Millisecond):
	}
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	w, err := Start(root, testDebounce)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitEvent(t, w)

	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		_, ok := w.paths[sub]
		return ok
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.go"), []byte("package pkg"), 0o644))
	waitEvent(t, w)
}

func TestRelevant(t *testing.T) {
	root := "/work"
	w := &Watcher{root: root}
	cases := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"/work/main.go", fsnotify.Write, true},
		{"/work/main.go", fsnotify.Chmod, false},
		{"/work/.forge/project.json", fsnotify.Write, false},
		{"/work/.git/index", fsnotify.Write, true},
		{"/work/.git/index.lock", fsnotify.Create, false},
		{"/work/.git/objects/ab/cdef", fsnotify.Create, false},
		{"/work/node_modules/x/y.js", fsnotify.Write, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, w.relevant(fsnotify.Event{Name: tc.name, Op: tc.op}), tc.name)
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	w, err := Start(t.TempDir(), testDebounce)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}
