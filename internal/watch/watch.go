// Package watch follows a located chat database on disk. SQLite
// writes land in the database file and its -wal/-shm sidecars, and
// backup tools replace files wholesale, so the watcher observes
// directories rather than individual files and coalesces the burst
// of events a single logical change produces into one callback.
package watch

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Func receives the paths that changed once the debounce window has
// passed. Paths are sorted and each appears at most once per call.
type Func func(paths []string)

// Watcher reports file changes under watched directories after a
// debounce period, so that a flurry of writes to a database and its
// sidecars surfaces as a single notification.
type Watcher struct {
	notify   Func
	fsw      *fsnotify.Watcher
	debounce time.Duration
	pending  map[string]time.Time
	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// New creates a watcher that calls notify with the changed paths
// once no further change has been seen for the debounce period.
func New(debounce time.Duration, notify Func) (*Watcher, error) {
	if notify == nil {
		return nil, fmt.Errorf("notify callback is nil: %w", os.ErrInvalid)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		notify:   notify,
		fsw:      fsw,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}
	return w, nil
}

// Watch adds a single directory to the watch list. Changes to files
// directly inside it are reported; subdirectories are not followed.
func (w *Watcher) Watch(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	return nil
}

// WatchRecursive walks a directory tree and watches every directory
// in it, returning how many were added. Inaccessible entries are
// skipped; backup trees routinely contain unreadable corners.
func (w *Watcher) WatchRecursive(root string) (int, error) {
	watched := 0
	err := filepath.WalkDir(root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if addErr := w.fsw.Add(path); addErr == nil {
					watched++
				}
			}
			return nil
		})
	return watched, err
}

// Start begins processing file events in a goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop stops the watcher and waits for the event loop to finish.
// It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		w.fsw.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.record(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

// record notes a single fsnotify event as pending, auto-watching
// newly created directories. Only writes and creations count; a
// removed database is not a change worth reporting, its successor is.
func (w *Watcher) record(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		w.watchNewDir(event.Name)
	}

	w.mu.Lock()
	w.pending[event.Name] = w.now()
	w.mu.Unlock()
}

// watchNewDir adds a path to the watch list if it is a directory.
func (w *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	_ = w.fsw.Add(path)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	now := w.now()
	var ready []string
	for path, t := range w.pending {
		if now.Sub(t) >= w.debounce {
			ready = append(ready, path)
		}
	}

	for _, path := range ready {
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if len(ready) > 0 {
		slices.Sort(ready)
		log.Printf("watch: %d file(s) changed", len(ready))
		w.notify(ready)
	}
}
