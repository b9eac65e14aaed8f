// Package watch keeps a snapshot of every supported file under a directory
// and reports the comments each save introduces.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/comment-checker/processor/comments"
	"github.com/c360studio/comment-checker/processor/gate"
)

// Config configures the file watcher
type Config struct {
	// Root is the directory to watch
	Root string

	// Debounce is how long to wait for more changes before processing
	Debounce time.Duration

	// Gate runs the checks. Nil uses a default gate.
	Gate *gate.Gate

	// IncludeDocstrings reports docstrings as well as comments
	IncludeDocstrings bool

	// Ignored reports paths (relative to Root) that are never checked
	Ignored func(path string) bool

	// Logger for logging events
	Logger *slog.Logger
}

// Operation indicates the type of file operation
type Operation string

const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event reports what one change to a file introduced
type Event struct {
	// Path is the file path relative to Root
	Path string

	// Operation is the type of change
	Operation Operation

	// Comments are the comments new since the previous snapshot
	Comments []comments.Comment

	// AgentMemos is the subset of Comments narrating the change
	AgentMemos []comments.Comment

	// Error if the file could not be read
	Error error
}

// Watcher watches a directory tree and emits comment events
type Watcher struct {
	config  Config
	gate    *gate.Gate
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op // path → most recent operation

	// Last seen source per relative path
	snapMu    sync.RWMutex
	snapshots map[string]string

	events chan Event
}

// NewWatcher creates a new file watcher
func NewWatcher(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if config.Ignored == nil {
		config.Ignored = func(string) bool { return false }
	}
	g := config.Gate
	if g == nil {
		g = gate.New(gate.Config{Logger: logger})
	}

	return &Watcher{
		config:    config,
		gate:      g,
		watcher:   fsw,
		logger:    logger,
		pending:   make(map[string]fsnotify.Op),
		snapshots: make(map[string]string),
		events:    make(chan Event, 100),
	}, nil
}

// Events returns the channel of watch events. It is closed when the watcher
// stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Seed records the current contents of every supported file so that only
// later changes are reported. It returns the number of files recorded.
func (w *Watcher) Seed(ctx context.Context) (int, error) {
	count := 0
	err := filepath.WalkDir(w.config.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if w.skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		rel := w.rel(path)
		if !w.tracked(rel) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("Failed to read file", "path", rel, "error", err)
			return nil
		}
		w.setSnapshot(rel, string(data))
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	w.logger.Debug("Seeded snapshots", "root", w.config.Root, "files", count)
	return count, nil
}

// Start begins watching the directory tree for changes
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.config.Root); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		"root", w.config.Root,
		"debounce", w.config.Debounce)

	return nil
}

// Stop stops the watcher. The events channel is closed once the processing
// goroutine has exited.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// Process checks a single changed file against its snapshot. The boolean is
// false when nothing changed.
func (w *Watcher) Process(ctx context.Context, path string, op fsnotify.Op) (Event, bool) {
	rel := w.rel(path)
	event := Event{Path: rel}

	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		return w.deleted(event)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return w.deleted(event)
	}
	if err != nil {
		event.Error = err
		return event, true
	}
	current := string(data)

	previous, hadSnapshot := w.snapshot(rel)
	if hadSnapshot && previous == current {
		return Event{}, false
	}
	w.setSnapshot(rel, current)

	in := gate.Input{
		FilePath:          rel,
		After:             current,
		IncludeDocstrings: w.config.IncludeDocstrings,
	}
	if hadSnapshot {
		event.Operation = OpModify
		in.Before = &previous
	} else {
		event.Operation = OpCreate
	}

	res := w.gate.Check(ctx, in)
	event.Comments = res.Comments
	event.AgentMemos = res.AgentMemos
	return event, true
}

func (w *Watcher) deleted(event Event) (Event, bool) {
	w.snapMu.Lock()
	_, had := w.snapshots[event.Path]
	delete(w.snapshots, event.Path)
	w.snapMu.Unlock()

	if !had {
		return Event{}, false
	}
	event.Operation = OpDelete
	return event, true
}

func (w *Watcher) snapshot(rel string) (string, bool) {
	w.snapMu.RLock()
	defer w.snapMu.RUnlock()
	src, ok := w.snapshots[rel]
	return src, ok
}

func (w *Watcher) setSnapshot(rel, src string) {
	w.snapMu.Lock()
	defer w.snapMu.Unlock()
	w.snapshots[rel] = src
}

// rel returns path relative to Root in slash form
func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.config.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// tracked reports whether a relative path is checked at all
func (w *Watcher) tracked(rel string) bool {
	return w.gate.Supports(rel) && !w.config.Ignored(rel)
}

// skipDir reports whether a directory below Root is left unwatched
func (w *Watcher) skipDir(path string) bool {
	if filepath.Clean(path) == filepath.Clean(w.config.Root) {
		return false
	}
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || w.config.Ignored(w.rel(path))
}

// addWatchesRecursive adds watches to all directories
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipDir(path) {
			return filepath.SkipDir
		}
		w.addWatch(path)
		return nil
	})
}

func (w *Watcher) addWatch(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch directory",
			"path", path,
			"error", err)
		return
	}
	w.logger.Debug("Watching directory", "path", path)
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.skipDir(path) {
				w.addWatch(path)
			}
			return
		}
	}

	rel := w.rel(path)
	if !w.tracked(rel) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected",
		"path", rel,
		"op", event.Op.String())
}

// flushPending processes accumulated changes
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		if ctx.Err() != nil {
			return
		}
		if event, ok := w.Process(ctx, path, op); ok {
			w.sendEvent(event)
		}
	}
}

// sendEvent sends an event to the output channel
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation,
			"comments", len(event.Comments))
	default:
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path)
	}
}
