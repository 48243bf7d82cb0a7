// Package watch reruns a cleaning pass whenever launcher files appear or
// change in the watched directories.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"desktopclean/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle
const DefaultDebounce = 2 * time.Second

// Watcher watches launcher directories for new or modified .desktop files
type Watcher struct {
	dirs     []string
	debounce time.Duration
	logger   logging.Logger
}

// New creates a new Watcher over dirs
func New(dirs []string, debounce time.Duration, logger logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.Discard
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dirs:     dirs,
		debounce: debounce,
		logger:   logger,
	}
}

// Relevant reports whether an event should trigger a pass
func Relevant(event fsnotify.Event) bool {
	// Only care about Write and Create events
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return strings.HasSuffix(filepath.Base(event.Name), ".desktop")
}

// Run blocks until ctx is cancelled, calling pass after each settled burst of
// relevant events. A failing pass is logged and watching continues. Events
// caused by the pass itself are discarded.
func (w *Watcher) Run(ctx context.Context, pass func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); err != nil {
			w.logger.Debugf("Not watching %s: %v", dir, err)
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched++
		w.logger.Infof("Watching %s", dir)
	}
	if watched == 0 {
		return fmt.Errorf("no directory to watch")
	}

	// Stopped timer; armed by the first relevant event of a burst
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !Relevant(event) {
				continue
			}
			w.logger.Debugf("Launcher changed: %s", event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnf("File watcher error: %v", err)

		case <-timer.C:
			if err := pass(); err != nil {
				w.logger.Errorf("Cleanup failed: %v", err)
			}
			w.drain(watcher)
		}
	}
}

// drain drops the events queued while a pass was running
func (w *Watcher) drain(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("Ignoring own change: %s", event.Name)
		default:
			return
		}
	}
}
