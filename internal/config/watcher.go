package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("config watcher closed")

// ReloadHandler receives the freshly loaded configuration, or the
// load error if the file became unparsable.
type ReloadHandler func(cfg Config, err error)

// Watcher reloads the configuration file when it changes on disk.
// Editors save config files with bursts of writes and renames, so
// events are debounced before reloading.
type Watcher struct {
	mu      sync.Mutex
	path    string
	fsw     *fsnotify.Watcher
	handler ReloadHandler
	pending *time.Timer
	closed  bool
	done    chan struct{}
}

// debounceWindow coalesces rapid file events into one reload.
const debounceWindow = 100 * time.Millisecond

// NewWatcher watches the config file at path. The parent directory is
// watched so atomic save-by-rename is still observed.
func NewWatcher(path string, handler ReloadHandler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		handler: handler,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceWindow, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		w.handler(Load(w.path))
	})
}
