// Package watch re-runs an action whenever a file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/henri123lemoine/layoutgen/internal/debug"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one file. It watches the parent directory, since editors
// often replace a file by renaming a new one over it.
type Watcher struct {
	path     string
	debounce time.Duration
	w        *fsnotify.Watcher
}

// New starts watching path.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: abs, debounce: debounce, w: w}, nil
}

// Run calls onChange after each settled change until ctx is done. Errors from
// onChange are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debug.Event("file changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			debug.Log("watch error: %v", err)

		case <-timer.C:
			if err := onChange(); err != nil {
				debug.Log("watch action failed: %v", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
