package maps

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses bursts of events for the same file.
const debounce = 100 * time.Millisecond

// Watch marks the library stale whenever a map file in the custom directory
// changes. It returns once the watcher is installed; the watch ends when ctx
// is canceled.
func (l *Library) Watch(ctx context.Context) error {
	if l.dir == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(l.dir); err != nil {
		_ = w.Close()
		return err
	}
	go l.watchLoop(ctx, w)
	return nil
}

func (l *Library) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	last := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), FileExt) {
				continue
			}
			now := time.Now()
			if t, ok := last[ev.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[ev.Name] = now
			l.logger.Debug("custom map changed", "file", ev.Name, "op", ev.Op)
			l.MarkStale()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.logger.Warn("map watcher", "err", err)
		case <-ctx.Done():
			return
		}
	}
}
