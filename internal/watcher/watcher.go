// Package watcher reports changes to a source file being viewed, with
// debouncing so an editor's burst of writes becomes one reload.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/pubsub"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 100 * time.Millisecond

// ErrStarted is returned by a second call to Start.
var ErrStarted = errors.New("watcher already started")

// Config describes what to watch.
type Config struct {
	Path     string
	Debounce time.Duration
	// Broker, when set, also receives a ReloadedEvent carrying the absolute
	// path.
	Broker *pubsub.Broker[string]
}

// DefaultConfig watches path with DefaultDebounce.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: DefaultDebounce}
}

// Watcher follows one file. Its directory is watched rather than the file so
// saves that rename a temp file into place are seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	broker   *pubsub.Broker[string]

	changes chan struct{}
	quit    chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

// New prepares a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		path = filepath.Clean(cfg.Path)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fs,
		path:     path,
		debounce: debounce,
		broker:   cfg.Broker,
		changes:  make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start watches the file's directory and returns a channel that receives one
// value per settled burst of changes. At most one signal is buffered.
func (w *Watcher) Start() (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil, ErrStarted
	}

	dir := filepath.Dir(w.path)
	if err := w.fs.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.started = true
	log.Debug(log.CatWatcher, "Watching file", "path", w.path, "debounce", w.debounce)

	go w.run()
	return w.changes, nil
}

// Stop ends the watch. Calling it again does nothing.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.quit)
	return w.fs.Close()
}

func (w *Watcher) run() {
	// settle is nil while no change is pending.
	var (
		timer  *time.Timer
		settle <-chan time.Time
		burst  int
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.quit:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.concerns(ev) {
				continue
			}
			burst++
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			settle = timer.C

		case <-settle:
			settle = nil
			w.fire(burst)
			burst = 0

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err, "path", w.path)
		}
	}
}

func (w *Watcher) fire(events int) {
	log.Debug(log.CatWatcher, "File changed", "path", w.path, "events", events)
	select {
	case w.changes <- struct{}{}:
	default:
	}
	if w.broker != nil {
		w.broker.Publish(pubsub.ReloadedEvent, w.path)
	}
}

// concerns reports whether ev may have changed the watched file's contents.
func (w *Watcher) concerns(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Clean(ev.Name) == w.path
}
