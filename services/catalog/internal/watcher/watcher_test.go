package watcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type harness struct {
	path    string
	reloads atomic.Int32
	cancel  context.CancelFunc
	done    chan error
}

func startWatcher(t *testing.T, reloadErr error) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{path: filepath.Join(dir, "catalog.json"), done: make(chan error, 1)}
	require.NoError(t, os.WriteFile(h.path, []byte("[]"), 0o644))

	w := New([]string{h.path, ""}, 50*time.Millisecond, func(context.Context) error {
		h.reloads.Add(1)
		return reloadErr
	}, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- w.Run(ctx) }()

	// Give inotify time to register the directory.
	time.Sleep(100 * time.Millisecond)
	return h
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	h.cancel()
	select {
	case err := <-h.done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	h := startWatcher(t, nil)
	defer h.stop(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(h.path, []byte(`[{"id":"x"}]`), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return h.reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Less(t, h.reloads.Load(), int32(5))
}

func TestWatcher_AtomicReplace(t *testing.T) {
	h := startWatcher(t, nil)
	defer h.stop(t)

	tmp := h.path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("[]"), 0o644))
	require.NoError(t, os.Rename(tmp, h.path))

	assert.Eventually(t, func() bool { return h.reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	h := startWatcher(t, nil)
	defer h.stop(t)

	other := filepath.Join(filepath.Dir(h.path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0o644))

	time.Sleep(250 * time.Millisecond)
	assert.Zero(t, h.reloads.Load())
}

func TestWatcher_KeepsRunningAfterReloadError(t *testing.T) {
	h := startWatcher(t, errors.New("bad catalog"))
	defer h.stop(t)

	require.NoError(t, os.WriteFile(h.path, []byte("{"), 0o644))
	require.Eventually(t, func() bool { return h.reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(h.path, []byte("[]"), 0o644))
	assert.Eventually(t, func() bool { return h.reloads.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "absent", "catalog.json")}, 0, func(context.Context) error { return nil }, newTestLogger())
	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}
