package fixture

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/getmockd/fixtures/pkg/logging"
)

// Op is the kind of change a Watcher reports.
type Op int

// Change kinds.
const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is a change below the data root.
type Event struct {
	Op Op
	// Path is slash-separated and relative to the root.
	Path string
}

// Watcher reports fixture changes under a data root. New subdirectories
// are watched as they appear.
type Watcher struct {
	root      string
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
	callbacks []func(Event)
	mu        sync.RWMutex

	done     chan struct{}
	loopDone chan struct{}
	started  bool
	stopped  bool
	stopOnce sync.Once
}

// NewWatcher creates a watcher for root. Call Start to begin.
func NewWatcher(root string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:     root,
		logger:   logging.Component(logger, "fixture-watcher"),
		watcher:  w,
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}, nil
}

// Watch creates a Watcher for the loader's root.
func (l *Loader) Watch() (*Watcher, error) {
	return NewWatcher(l.root, l.logger)
}

// OnChange registers a callback for change events.
func (w *Watcher) OnChange(cb func(Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Start watches every directory under the root and begins delivering events.
// A watcher starts at most once; it cannot be restarted after Stop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrWatcherStopped
	}
	if w.started {
		return ErrWatcherStarted
	}

	if err := checkDir(w.root); err != nil {
		return err
	}

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("cannot walk fixture directory", "path", path, "error", err)
			//nolint:nilerr // keep watching what can be reached
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("cannot watch fixture directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.started = true
	go w.eventLoop()
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		started := w.started
		w.mu.Unlock()

		close(w.done)
		err = w.watcher.Close()
		if started {
			<-w.loopDone
		}
	})
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.loopDone)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("fixture watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
		if isDir(event.Name) {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("cannot watch fixture directory", "path", event.Name, "error", err)
			}
		}
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	e := Event{Op: op, Path: relTo(w.root, event.Name)}

	w.mu.RLock()
	callbacks := make([]func(Event), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(e)
	}
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
