package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/litescript/ls-galaxy/internal/logging"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a catalog file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *logging.Logger
}

// NewWatcher creates a watcher for the catalog file at path.
func NewWatcher(path string, logger *logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// Run blocks until ctx is done, calling onChange after each settled change
// to the file. The parent directory is watched so that atomic
// rename-on-save is seen too.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.logger.Debug("watching %s", target)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if relevant(ev, target) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("catalog watcher: %v", err)
		case <-timer.C:
			w.logger.Info("catalog changed: %s", target)
			onChange()
		}
	}
}

// relevant reports whether ev may have changed the file at target.
func relevant(ev fsnotify.Event, target string) bool {
	abs, err := filepath.Abs(ev.Name)
	if err != nil || abs != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
