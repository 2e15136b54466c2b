// Package watcher monitors a directory of hand-history files and reports
// files that have settled after a write burst. Poker rooms append to the
// active history file on every hand, so per-file debouncing keeps the
// importer from re-reading a file once per line.
package watcher

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/fsnotify/fsnotify"
)

// Config configures a directory watcher.
type Config struct {
	// Dir is the directory to watch.
	Dir string
	// Glob filters file basenames, e.g. "*.txt". Empty matches everything.
	Glob string
	// Debounce is how long a file must stay quiet before OnFile fires.
	Debounce time.Duration
	// Clock drives the debounce timers; tests pass a mock.
	Clock quartz.Clock

	Logger *log.Logger

	// OnFile is called with the path of a settled file.
	OnFile func(path string)
	// OnError receives watch errors. Nil means they are only logged.
	OnError func(err error)
}

// Watcher watches one directory for hand-history file activity.
type Watcher struct {
	cfg     Config
	watcher *fsnotify.Watcher
	done    chan struct{}

	stopOnce sync.Once

	mu     sync.Mutex
	timers map[string]*quartz.Timer
}

// New creates a watcher for the configured directory. Start must be called
// before any events are delivered.
func New(cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watcher: Dir is required")
	}
	if cfg.OnFile == nil {
		return nil, fmt.Errorf("watcher: OnFile is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	cfg.Logger = cfg.Logger.WithPrefix("watcher").With("dir", cfg.Dir)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		cfg:     cfg,
		watcher: fsw,
		done:    make(chan struct{}),
		timers:  make(map[string]*quartz.Timer),
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", w.cfg.Dir, err)
	}
	w.cfg.Logger.Info("watching for hand histories", "glob", w.cfg.Glob)
	go w.watchLoop()
	return nil
}

// Stop stops the watcher and cancels pending debounce timers.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.watcher.Close()

		w.mu.Lock()
		defer w.mu.Unlock()
		for path, t := range w.timers {
			t.Stop()
			delete(w.timers, path)
		}
		w.cfg.Logger.Info("watcher stopped")
	})
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			w.touch(filepath.Clean(event.Name))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.cfg.Logger.Error("watch error", "error", err)
			if w.cfg.OnError != nil {
				w.cfg.OnError(err)
			}
		}
	}
}

// touch resets the file's debounce timer, starting one on first sight.
// Timer calls happen outside the mutex so Stop never waits on the clock.
func (w *Watcher) touch(path string) {
	w.mu.Lock()
	t, ok := w.timers[path]
	w.mu.Unlock()
	if ok {
		t.Reset(w.cfg.Debounce)
		return
	}

	t = w.cfg.Clock.AfterFunc(w.cfg.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		w.cfg.Logger.Debug("file settled", "path", path)
		w.cfg.OnFile(path)
	})
	w.mu.Lock()
	w.timers[path] = t
	w.mu.Unlock()
}

func (w *Watcher) matches(name string) bool {
	if w.cfg.Glob == "" {
		return true
	}
	ok, err := filepath.Match(w.cfg.Glob, filepath.Base(name))
	return err == nil && ok
}
