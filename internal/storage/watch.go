package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called once the store file has been quiet for the debounce period
type ChangeHandler func()

// Watcher monitors a store file for writes made by other processes.
// SQLite also touches the -wal and -journal siblings, so the parent
// directory is watched and events are matched on the file name prefix.
type Watcher struct {
	path          string
	debounceDelay time.Duration
	handler       ChangeHandler
	watcher       *fsnotify.Watcher
	stopChan      chan struct{}
	doneChan      chan struct{}
	stopOnce      sync.Once

	mu      sync.Mutex
	timer   *time.Timer
	started bool
}

// NewWatcher creates a watcher for the store file at path
func NewWatcher(path string, debounce time.Duration, handler ChangeHandler) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:          filepath.Clean(path),
		debounceDelay: debounce,
		handler:       handler,
		watcher:       fsWatcher,
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}, nil
}

// Start begins watching the store file
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch store directory: %w", err)
	}

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.processEvents()

	slog.Info("store watcher started",
		"path", w.path,
		"debounce_ms", w.debounceDelay.Milliseconds(),
	)
	return nil
}

// Stop stops watching and cancels any pending notification.
// It is safe to call on a watcher that was never started.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()

		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.doneChan
		}

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
	return err
}

func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.matches(event) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("store watcher error", "error", err)
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), filepath.Base(w.path))
}

// schedule restarts the debounce timer
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case <-w.stopChan:
			return
		default:
		}
		slog.Debug("store file changed", "path", w.path)
		w.handler()
	})
}
