// Package watcher triggers capture runs when new images land in the input
// folder, either from filesystem notifications or by polling.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/averros/tidydesk/internal/common"
)

// RunFunc performs one capture run. trigger is "watch" or "poll".
type RunFunc func(ctx context.Context, trigger string) error

// Watcher debounces file events on one directory and serializes runs:
// a trigger arriving while a run is in flight is dropped, not queued.
type Watcher struct {
	dir      string
	settle   time.Duration
	debounce time.Duration
	interval time.Duration
	logger   *slog.Logger
	run      RunFunc

	processing  atomic.Bool
	lastTrigger time.Time
}

// New builds a Watcher over dir invoking run on qualifying changes.
func New(dir string, settle, debounce, pollInterval time.Duration, logger *slog.Logger, run RunFunc) *Watcher {
	return &Watcher{
		dir:      dir,
		settle:   settle,
		debounce: debounce,
		interval: pollInterval,
		logger:   logger,
		run:      run,
	}
}

// shouldTrigger applies the debounce window and the mid-run guard.
func (w *Watcher) shouldTrigger(now time.Time) bool {
	if w.processing.Load() {
		return false
	}
	if !w.lastTrigger.IsZero() && now.Sub(w.lastTrigger) < w.debounce {
		return false
	}
	return true
}

// fire waits the settle delay then executes one run. Run errors are
// logged, never fatal to the watch loop.
func (w *Watcher) fire(ctx context.Context, trigger string) {
	w.lastTrigger = time.Now()
	w.processing.Store(true)
	defer w.processing.Store(false)

	select {
	case <-time.After(w.settle):
	case <-ctx.Done():
		return
	}

	if err := w.run(ctx, trigger); err != nil {
		w.logger.Error("capture run failed", "trigger", trigger, "error", err)
	}
}

// Watch subscribes to filesystem notifications on the directory and runs
// the processor on image create/write events. Blocks until ctx is done.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create watch dir: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info("watching for new captures", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !common.IsImageFile(event.Name) {
				continue
			}
			if !w.shouldTrigger(time.Now()) {
				continue
			}
			w.logger.Info("new capture detected", "file", event.Name)
			w.fire(ctx, "watch")
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Poll scans the directory on a fixed interval and runs the processor when
// new image names appear. Blocks until ctx is done.
func (w *Watcher) Poll(ctx context.Context) error {
	known, err := w.imageSet()
	if err != nil {
		return err
	}

	w.logger.Info("polling for new captures", "dir", w.dir, "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current, err := w.imageSet()
			if err != nil {
				w.logger.Warn("poll scan failed", "error", err)
				continue
			}

			fresh := 0
			for name := range current {
				if _, ok := known[name]; !ok {
					fresh++
				}
			}
			known = current

			if fresh == 0 || !w.shouldTrigger(time.Now()) {
				continue
			}
			w.logger.Info("new captures detected", "count", fresh)
			w.fire(ctx, "poll")
		}
	}
}

// imageSet returns the current image file names in the directory.
func (w *Watcher) imageSet() (map[string]struct{}, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", w.dir, err)
	}
	set := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || !common.IsImageFile(entry.Name()) {
			continue
		}
		set[entry.Name()] = struct{}{}
	}
	return set, nil
}
