package corpussync

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader rebuilds and installs the corpus snapshot.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher reloads the corpus whenever its file changes on disk. Bursts of
// events are merged into one reload after the debounce delay.
type Watcher struct {
	path     string
	debounce time.Duration
	reloader Reloader
	logger   *slog.Logger
}

// NewWatcher constructs a watcher for path.
func NewWatcher(path string, debounce time.Duration, reloader Reloader, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		reloader: reloader,
		logger:   logger.With("component", "corpussync.watcher", "path", path),
	}
}

// Run blocks until ctx is cancelled. The parent directory is watched so
// editors that replace the file atomically are still observed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch corpus directory: %w", err)
	}
	w.logger.Info("corpus watcher started")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		case <-fire:
			fire = nil
			if err := w.reloader.Reload(ctx); err != nil {
				w.logger.Error("corpus reload failed, keeping previous snapshot", "error", err)
				continue
			}
			w.logger.Info("corpus reloaded after file change")
		}
	}
}
