// Package watcher reports changes to a fixed set of files, debounced so
// that an editor's burst of writes becomes one signal.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher signals when any of its files is written, created or renamed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	changes  chan struct{}
	errs     chan error
	done     chan struct{}
}

// New watches files. The parent directories are watched so that editors
// that replace a file by rename are still seen.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	seen := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Start begins watching. The changes channel holds at most one pending
// signal; errors from fsnotify are forwarded without stopping the watch.
func (w *Watcher) Start() (changes <-chan struct{}, errs <-chan error, err error) {
	for _, dir := range w.dirs {
		if err := w.fsw.Add(dir); err != nil {
			return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	go w.loop()
	return w.changes, w.errs, nil
}

// Stop ends the watch and releases the fsnotify handle.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
