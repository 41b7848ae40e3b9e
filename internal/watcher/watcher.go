package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driving"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

// debounceDelay coalesces rapid write events for the same file. Editors
// typically emit several writes per save.
const debounceDelay = 500 * time.Millisecond

// Watcher ingests files from a directory into the library and keeps the
// index in sync with file changes.
type Watcher struct {
	dir       string
	library   driving.LibraryService
	extractor driven.ContentExtractor

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for dir. The directory must exist.
func New(dir string, library driving.LibraryService, extractor driven.ContentExtractor) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %s is not a directory", dir)
	}

	return &Watcher{
		dir:       dir,
		library:   library,
		extractor: extractor,
		pending:   make(map[string]*time.Timer),
	}, nil
}

// Run ingests existing files, then processes filesystem events until the
// context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	if err := w.ingestExisting(ctx); err != nil {
		return err
	}

	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// ingestExisting uploads files already present in the directory.
func (w *Watcher) ingestExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read watch directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if !w.shouldIngest(path) {
			continue
		}
		w.ingest(ctx, path)
	}
	return nil
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		if !w.shouldIngest(event.Name) {
			return
		}
		w.debounce(event.Name, func() { w.ingest(ctx, event.Name) })

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.remove(ctx, event.Name)
	}
}

// debounce schedules fn for path, resetting any earlier schedule.
func (w *Watcher) debounce(path string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		fn()
	})
}

// shouldIngest reports whether a path is eligible for indexing: a
// non-hidden regular file with a supported extension.
func (w *Watcher) shouldIngest(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" || !w.extractor.Supports(ext) {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

func (w *Watcher) ingest(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Read %s failed: %v", path, err)
		return
	}
	if len(data) == 0 {
		return
	}

	doc, err := w.library.Upload(ctx, driving.UploadRequest{
		ID:      PathID(path),
		Title:   filepath.Base(path),
		Content: data,
	})
	if err != nil {
		logger.Warn("Ingest %s failed: %v", path, err)
		return
	}
	logger.Info("Ingested %s (%s)", path, doc.Status)
}

func (w *Watcher) remove(ctx context.Context, path string) {
	err := w.library.Delete(ctx, PathID(path))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Remove %s failed: %v", path, err)
	}
}

// PathID derives a stable document ID from a file path, so edits to the
// same file re-index the same document instead of accumulating copies.
func PathID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()
}
