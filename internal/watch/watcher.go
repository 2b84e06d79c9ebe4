// Package watch follows the directory being browsed and reports changes made
// to it by other programs, so the panes can be refreshed.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"filescout/internal/errors"
	"filescout/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change represents an entry of the watched directory that was created,
// written, removed or renamed.
type Change struct {
	Dir       string
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors a single directory at a time using fsnotify.
type Watcher struct {
	// Directory currently watched, empty before SetDirectory
	dir string

	// Channel to deliver changes
	changes chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a watcher whose change channel holds up to buffer pending
// changes. Changes arriving while it is full are dropped, since one pending
// change is enough to trigger a refresh.
func New(buffer int) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if buffer < 1 {
		buffer = 1
	}
	return &Watcher{
		changes:   make(chan Change, buffer),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// SetDirectory moves the watch to dir. Setting the current directory again
// is a no-op.
func (w *Watcher) SetDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.FromOS("watch", dir, err)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		// The old directory may already be gone; fsnotify drops its watch then.
		_ = w.fsWatcher.Remove(w.dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Directory returns the directory being watched.
func (w *Watcher) Directory() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// Changes returns the channel that delivers directory changes.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing fsnotify events in the background.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.NewKind(errors.InvalidOperation, "watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mutex.Unlock()

	go w.loop(stop)
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}) {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}

			// Events queued for a directory we have since left are stale.
			dir := w.Directory()
			if filepath.Dir(event.Name) != dir {
				continue
			}

			change := Change{
				Dir:       dir,
				Path:      event.Name,
				Op:        event.Op,
				Timestamp: time.Now(),
			}
			select {
			case w.changes <- change:
			default:
				log.LogWithFields(log.F("file", event.Name)).Debug("change channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// Stop halts the watcher and closes the change channel.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.running = false
	close(w.changes)
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
