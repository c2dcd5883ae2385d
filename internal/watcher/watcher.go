// Package watcher keeps usage estimates fresh by re-running estimation
// whenever a watched shell history file changes.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/macsweep/internal/history"
)

// DefaultDebounce is how long the watcher waits after the last history
// write before triggering a refresh. Shells append in bursts; a short
// settle window collapses them into one refresh.
const DefaultDebounce = 2 * time.Second

// Watcher watches shell history files with fsnotify and invokes a refresh
// callback after changes settle. fsnotify on macOS reports directory
// events more reliably than per-file watches (editors and shells replace
// files), so the parent directories are watched and events filtered to
// the known history paths.
type Watcher struct {
	logs     []history.Log
	refresh  func() error
	debounce time.Duration

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher over the given history logs. refresh is called
// after each settled burst of changes.
func New(logs []history.Log, refresh func() error) (*Watcher, error) {
	if len(logs) == 0 {
		return nil, fmt.Errorf("no history files to watch")
	}
	if refresh == nil {
		return nil, fmt.Errorf("refresh callback cannot be nil")
	}
	return &Watcher{
		logs:     logs,
		refresh:  refresh,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It runs one refresh immediately so the store is
// current before the first change arrives.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w.fsw = fsw

	dirs := make(map[string]struct{})
	for _, log := range w.logs {
		dirs[filepath.Dir(log.Path)] = struct{}{}
	}
	watched := 0
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fmt.Fprintf(os.Stderr, "macsweep: cannot watch %s: %v\n", dir, err)
			continue
		}
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return fmt.Errorf("no watchable history directories")
	}

	if err := w.refresh(); err != nil {
		fmt.Fprintf(os.Stderr, "macsweep: initial refresh: %v\n", err)
	}

	w.wg.Add(1)
	go w.run()

	return nil
}

// run consumes fsnotify events until stopped. A debounce timer is armed on
// each relevant event and the refresh fires only when it expires.
func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isWatchedPath(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			if err := w.refresh(); err != nil {
				fmt.Fprintf(os.Stderr, "macsweep: refresh: %v\n", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "macsweep: watch error: %v\n", err)

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isWatchedPath reports whether the event path is one of the history files.
func (w *Watcher) isWatchedPath(path string) bool {
	for _, log := range w.logs {
		if path == log.Path {
			return true
		}
	}
	return false
}

// Stop halts the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.wg.Wait()
	return nil
}
