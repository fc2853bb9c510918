// Package watcher provides file watching for configuration live reload.
//
// The watcher monitors settings files through fsnotify and triggers
// handlers when they change on disk. Parent directories are watched rather
// than the files themselves, so editors that save by writing a temp file
// and renaming it over the original are still seen.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.RWMutex

	fsw      *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]int
	handlers []Handler
	errs     func(error)

	debounce time.Duration
	pending  map[string]*pendingEvent

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// pendingEvent stores a pending event with its operation for debouncing.
type pendingEvent struct {
	op    Operation
	timer *time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets a callback for fsnotify errors.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.errs = fn
	}
}

// New creates a new file watcher.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]*pendingEvent),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file to the watch list. The file does not need to exist
// yet, but its directory does.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[absPath] {
		return nil
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[absPath] {
		return nil
	}
	delete(w.files, absPath)

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// WatchedFiles returns the list of watched files.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	return files
}

// Start begins delivering events. Calling Start twice is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	var ctx context.Context
	ctx, w.cancel = context.WithCancel(context.Background())
	w.running = true

	w.wg.Add(1)
	go w.loop(ctx)
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Close stops the watcher and releases the fsnotify handle.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.running {
		w.cancel()
		w.running = false
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.errs != nil {
				w.errs(err)
			}
		}
	}
}

func (w *Watcher) handleFSEvent(ev fsnotify.Event) {
	path, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.RLock()
	watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return
	}

	event := Event{Path: path, Op: convertOp(ev.Op), Time: time.Now()}
	if w.debounce == 0 {
		w.emit(event)
		return
	}
	w.queue(event)
}

// queue coalesces events per file: remove wins over everything, create
// wins over write.
func (w *Watcher) queue(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.pending[event.Path]; ok {
		switch {
		case event.Op == OpRemove:
			p.op = OpRemove
		case event.Op == OpCreate && p.op != OpRemove:
			p.op = OpCreate
		}
		p.timer.Reset(w.debounce)
		return
	}

	p := &pendingEvent{op: event.Op}
	path := event.Path
	p.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		op := p.op
		delete(w.pending, path)
		w.mu.Unlock()
		w.emit(Event{Path: path, Op: op, Time: time.Now()})
	})
	w.pending[path] = p
}

// emit calls all handlers with the event.
func (w *Watcher) emit(event Event) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		safeCall(handler, event)
	}
}

// safeCall calls a handler with panic recovery to keep the watcher running.
func safeCall(handler Handler, event Event) {
	defer func() {
		_ = recover()
	}()
	handler(event)
}

func convertOp(op fsnotify.Op) Operation {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	case op.Has(fsnotify.Create):
		return OpCreate
	default:
		return OpWrite
	}
}
