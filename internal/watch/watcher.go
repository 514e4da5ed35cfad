// Package watch reports changes to the configuration file.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leandrodaf/korgi/sdk/contracts"
)

// Watcher detects modifications of a single file. File-system notifications
// are delivered on Events when the platform supports them; Changed compares
// modification times and works everywhere.
type Watcher struct {
	path   string
	logger contracts.Logger

	mu   sync.Mutex
	last time.Time

	fs     *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

// New starts watching path. The current modification time is recorded, so
// the first Changed call only reports later edits.
func New(path string, logger contracts.Logger) (*Watcher, error) {
	w := &Watcher{
		path:   path,
		logger: logger,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	mtime, err := w.modTime()
	if err != nil {
		return nil, err
	}
	w.last = mtime

	// The directory is watched rather than the file so editors that save by
	// renaming a new file into place keep being noticed.
	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		err = fsw.Add(filepath.Dir(path))
		if err != nil {
			fsw.Close()
		}
	}
	if err != nil {
		logger.Warn("File notifications unavailable, polling only",
			logger.Field().String("file", path),
			logger.Field().Error("error", err))
		return w, nil
	}

	w.fs = fsw
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events delivers a value after the file was written, created or renamed.
// It is nil when notifications are unavailable.
func (w *Watcher) Events() <-chan struct{} {
	if w.fs == nil {
		return nil
	}
	return w.events
}

// Changed reports whether the file's modification time moved past the one
// last recorded, and records the new time.
func (w *Watcher) Changed() (bool, error) {
	mtime, err := w.modTime()
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !mtime.After(w.last) {
		return false, nil
	}
	w.last = mtime
	return true, nil
}

// Sync records the current modification time without reporting a change.
// It is used after a notification has already triggered a reload.
func (w *Watcher) Sync() {
	mtime, err := w.modTime()
	if err != nil {
		return
	}
	w.mu.Lock()
	if mtime.After(w.last) {
		w.last = mtime
	}
	w.mu.Unlock()
}

// Close stops the notification goroutine.
func (w *Watcher) Close() error {
	if w.fs == nil {
		return nil
	}
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) modTime() (time.Time, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, fmt.Errorf("couldn't open %s: %w", w.path, err)
	}
	return info.ModTime(), nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	name := filepath.Clean(w.path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", w.logger.Field().Error("error", err))
		}
	}
}
