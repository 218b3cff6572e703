package ingest

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	DefaultDebounce = 500 * time.Millisecond

	watchEventBuffer = 64
)

// Watcher reports supported documents created or rewritten in one directory.
// Bursts of writes to the same file are collapsed into one event per
// debounce window, and a file whose content did not change is not reported
// again.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{}

	hashes map[string][sha256.Size]byte
	events chan string
}

func NewWatcher(dir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  map[string]struct{}{},
		hashes:   map[string][sha256.Size]byte{},
		events:   make(chan string, watchEventBuffer),
	}, nil
}

// Events is closed when Run returns.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Run processes file system events until ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "dir", w.dir, "error", err)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !Supported(event.Name) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = struct{}{}
	w.pendingMu.Unlock()
}

func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	paths := w.pending
	w.pending = map[string]struct{}{}
	w.pendingMu.Unlock()

	for path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("skip unreadable document", "path", path, "error", err)
			continue
		}
		if len(content) == 0 {
			continue
		}

		sum := sha256.Sum256(content)
		if previous, ok := w.hashes[path]; ok && previous == sum {
			continue
		}
		w.hashes[path] = sum

		select {
		case w.events <- path:
		case <-ctx.Done():
			return
		}
	}
}
