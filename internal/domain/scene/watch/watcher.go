// Package watch reloads a scene fixture whenever its file changes on disk,
// bridging filesystem events to the engine's cache invalidation.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/panos-dim/missionviz/internal/infrastructure/monitoring/logging"
	"github.com/panos-dim/missionviz/pkg/errors"
)

// DefaultDebounce is the settle window applied before a change event fires
// the reload callback.  Editors and atomic-save tools emit bursts of events
// per save; only the last event of a burst matters.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches one fixture file and invokes a callback after each settled
// change.  The callback runs on the watcher's goroutine; it should reload the
// fixture and invalidate the engine cache, and must not block for long.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)
	log      logging.Logger

	fs   *fsnotify.Watcher
	stop context.CancelFunc
	done chan struct{}
	once sync.Once
}

// New creates a watcher for the fixture at path.  A zero debounce selects
// DefaultDebounce.
func New(path string, debounce time.Duration, onChange func(path string), log logging.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.InvalidParam("watch callback is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeWatchFailed, "failed to create filesystem watcher")
	}
	// Watch the directory, not the file: atomic saves replace the inode and
	// a file-level watch would go dead after the first save.
	dir := filepath.Dir(path)
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, errors.Wrap(err, errors.ErrCodeWatchFailed, "failed to watch fixture directory").
			WithDetail("dir=" + dir)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		log:      log.Named("watch"),
		fs:       fs,
		done:     make(chan struct{}),
	}, nil
}

// Start begins delivering change events until the context is cancelled or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.stop = context.WithCancel(ctx)
	go w.run(ctx)
}

// Stop cancels watching and releases the filesystem watcher.  Safe to call
// more than once and safe to call before Start.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		if w.stop != nil {
			w.stop()
			<-w.done
		}
		_ = w.fs.Close()
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.log.Info("fixture changed, reloading", logging.String("path", w.path))
			w.onChange(w.path)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("fixture watch error", logging.Err(err))
		}
	}
}
