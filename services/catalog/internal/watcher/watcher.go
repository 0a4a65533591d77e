// Package watcher triggers catalog reloads when files on disk change.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period waited after the last change before a
// reload runs.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc is invoked once per burst of changes.
type ReloadFunc func(ctx context.Context) error

// Watcher observes a set of files and calls reload after they settle.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	reload   ReloadFunc
	logger   *slog.Logger
}

// New creates a watcher for paths. Parent directories are watched rather than
// the files themselves so atomic replace-by-rename saves are seen.
func New(paths []string, debounce time.Duration, reload ReloadFunc, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
		reload:   reload,
		logger:   logger,
	}
	seen := map[string]bool{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		w.files[abs] = struct{}{}
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.InfoContext(ctx, "watching catalog files", slog.Any("dirs", w.dirs))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.DebugContext(ctx, "catalog file changed",
				slog.String("file", ev.Name),
				slog.String("op", ev.Op.String()),
			)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			if err := w.reload(ctx); err != nil {
				w.logger.ErrorContext(ctx, "reload after file change failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		name = filepath.Clean(ev.Name)
	}
	_, ok := w.files[name]
	return ok
}
