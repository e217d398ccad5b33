package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is a change to the watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
	At   time.Time
}

// Handler receives matching events on the watcher goroutine. It must not
// block for long and must not touch UI state directly.
type Handler func(Event)

// Registration associates a watched directory with the file name of
// interest inside it.
type Registration struct {
	Dir  string
	Name string
}

// Path returns the full path of the watched file.
func (r Registration) Path() string { return filepath.Join(r.Dir, r.Name) }

// Watcher owns one fsnotify handle for its whole lifetime. Switching files
// removes the previous directory from the handle instead of recreating it.
type Watcher struct {
	fsw     *fsnotify.Watcher
	handler Handler
	logger  *slog.Logger

	mu     sync.Mutex
	reg    Registration
	active bool
}

// New creates a watcher that delivers matching events to handler.
func New(handler Handler, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{fsw: fsw, handler: handler, logger: logger}, nil
}

// Watch makes path the single file of interest. Any previous registration
// is torn down first.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", path, err)
	}

	next := Registration{Dir: filepath.Dir(abs), Name: filepath.Base(abs)}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active && w.reg.Dir == next.Dir {
		w.reg = next
		w.logger.Debug("watch retargeted", slog.String("file", next.Path()))

		return nil
	}

	w.removeLocked()

	if err := w.fsw.Add(next.Dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", next.Dir, err)
	}

	w.reg = next
	w.active = true
	w.logger.Debug("watch registered", slog.String("dir", next.Dir), slog.String("file", next.Name))

	return nil
}

// Unwatch drops the current registration, if any.
func (w *Watcher) Unwatch() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.removeLocked()
}

func (w *Watcher) removeLocked() {
	if !w.active {
		return
	}

	if err := w.fsw.Remove(w.reg.Dir); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
		w.logger.Warn("removing watch", slog.String("dir", w.reg.Dir), slog.String("error", err.Error()))
	}

	w.logger.Debug("watch removed", slog.String("dir", w.reg.Dir))
	w.reg = Registration{}
	w.active = false
}

// Registration returns the active registration.
func (w *Watcher) Registration() (Registration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.reg, w.active
}

// WatchList returns the directories currently held by the fsnotify handle.
func (w *Watcher) WatchList() []string {
	return w.fsw.WatchList()
}

// Run delivers events until ctx is cancelled or the watcher is closed.
// Cancellation is a normal shutdown and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if !w.matches(event) {
				continue
			}

			w.handler(Event{Path: filepath.Clean(event.Name), Op: event.Op, At: time.Now()})

		case watchErr, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			w.logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// Close releases the fsnotify handle. Run returns once its channels close.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.active = false
	w.reg = Registration{}
	w.mu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if !isRelevant(event) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.active {
		return false
	}

	name := filepath.Clean(event.Name)

	return filepath.Dir(name) == w.reg.Dir && filepath.Base(name) == w.reg.Name
}

// isRelevant keeps content changes. Editors that save by renaming a temp
// file over the target produce Create on the target.
func isRelevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
