package reminderfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher calls onChange after the reminders file has been written. The
// parent directory is watched so editors that replace the file by rename
// are still noticed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)

	mu    sync.Mutex
	timer *time.Timer
}

func NewWatcher(path string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve reminders file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  watcher,
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	slog.InfoContext(ctx, "watching reminders file",
		slog.String("event", "reminderfile.watch.start"),
		slog.String("path", w.path),
	)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.WarnContext(ctx, "reminders file watcher error",
				slog.String("path", w.path),
				slog.String("error", err.Error()),
			)

		case <-ctx.Done():
			w.stopTimer()
			return
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		slog.InfoContext(ctx, "reminders file changed",
			slog.String("event", "reminderfile.changed"),
			slog.String("path", w.path),
		)
		if w.onChange != nil {
			w.onChange(ctx)
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}
