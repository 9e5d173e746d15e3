// Package watch re-runs a callback whenever the record store changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures a store watcher.
type Config struct {
	// Path is the database file to watch.
	Path string

	// PollInterval is the backup polling cadence used when file events are
	// missed or disabled. Zero means 2s.
	PollInterval time.Duration

	// UseFsnotify enables file system notifications; when false, only the
	// polling ticker drives updates.
	UseFsnotify bool

	// OnChange is called after the store content changes. Errors are
	// reported but do not stop the watcher.
	OnChange func() error
}

// Watcher reruns a callback when the watched database file changes.
type Watcher struct {
	path         string
	pollInterval time.Duration
	useFsnotify  bool
	onChange     func() error
	stopChan     chan struct{}
}

// New creates a watcher from the given configuration.
func New(config Config) (*Watcher, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("watch path required")
	}
	if config.OnChange == nil {
		return nil, fmt.Errorf("change callback required")
	}
	if config.PollInterval == 0 {
		config.PollInterval = 2 * time.Second
	}

	return &Watcher{
		path:         config.Path,
		pollInterval: config.PollInterval,
		useFsnotify:  config.UseFsnotify,
		onChange:     config.OnChange,
		stopChan:     make(chan struct{}),
	}, nil
}

// Start blocks, invoking the callback whenever the store changes, until the
// context is canceled or Stop is called. The callback runs once immediately
// so the first view appears without waiting for a change.
func (w *Watcher) Start(ctx context.Context) (err error) {
	if err := w.fire(); err != nil {
		fmt.Printf("[WARN] Update failed: %v\n", err)
	}

	// The watcher's own channels feed the select directly; with fsnotify
	// disabled they stay nil and those cases never fire. No forwarding
	// goroutines, so returning cannot strand a blocked sender.
	var events <-chan fsnotify.Event
	var watchErrs <-chan error

	if w.useFsnotify {
		watcher, watchErr := fsnotify.NewWatcher()
		if watchErr != nil {
			return fmt.Errorf("failed to create file watcher: %w", watchErr)
		}
		defer func() {
			if closeErr := watcher.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()

		// Watch the containing directory: SQLite swaps WAL and journal
		// files around the database, and a watch on the file itself is
		// lost across those renames.
		if err := watcher.Add(filepath.Dir(w.path)); err != nil {
			return fmt.Errorf("failed to watch store directory: %w", err)
		}
		events = watcher.Events
		watchErrs = watcher.Errors
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	lastMod := w.modTime()
	base := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil
		case event := <-events:
			name := filepath.Base(event.Name)
			if name != base && name != base+"-wal" && name != base+"-journal" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.fire(); err != nil {
				fmt.Printf("[WARN] Update failed: %v\n", err)
			}
			lastMod = w.modTime()
		case werr := <-watchErrs:
			fmt.Printf("[WARN] File watcher error: %v\n", werr)
		case <-ticker.C:
			// Backup polling in case file events are missed
			if mod := w.modTime(); mod.After(lastMod) {
				lastMod = mod
				if err := w.fire(); err != nil {
					fmt.Printf("[WARN] Update failed: %v\n", err)
				}
			}
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
}

func (w *Watcher) fire() error {
	return w.onChange()
}

func (w *Watcher) modTime() time.Time {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
