package destination

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads the catalog whenever its backing file changes.
// The parent directory is watched so editor rename-on-save is picked up.
type Watcher struct {
	path     string
	loader   *Loader
	log      *slog.Logger
	debounce time.Duration
}

// NewWatcher constructs a Watcher for the catalog file at path.
func NewWatcher(path string, loader *Loader, log *slog.Logger) *Watcher {
	return &Watcher{path: path, loader: loader, log: log, debounce: defaultDebounce}
}

// WithDebounce overrides the quiet period between a change and the reload.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run blocks until ctx is done. A failed reload is logged and the
// previous collection stays in place.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving catalog path %s: %w", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.log.Info("watching catalog file", "path", abs)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("catalog watcher error", "err", err)

		case <-timer.C:
			// Load logs its own failures.
			_, _ = w.loader.Load(ctx)
		}
	}
}
