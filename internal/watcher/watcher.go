package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ReedMe1234/lgrep/internal/chunk"
	"github.com/ReedMe1234/lgrep/internal/config"
	"github.com/ReedMe1234/lgrep/internal/embed"
	"github.com/ReedMe1234/lgrep/internal/errors"
	"github.com/ReedMe1234/lgrep/internal/indexer"
	"github.com/ReedMe1234/lgrep/internal/store"
)

// debounceWindow is the fixed coalescing window mandated by spec §4.7.
const debounceWindow = 500 * time.Millisecond

// Watcher wraps an Indexer and a mutex-guarded VectorIndex, re-syncing the
// index whenever the filesystem changes under the watched root.
type Watcher struct {
	cfg      *config.Config
	embedder embed.Embedder
	logger   *slog.Logger

	mu    sync.Mutex
	index *store.VectorIndex

	fsw       *fsnotify.Watcher
	debouncer *Debouncer
}

// New builds a Watcher over index, sharing ownership behind a mutex: the
// only contract is exactly one mutator at a time, no reader during mutation.
func New(cfg *config.Config, index *store.VectorIndex, embedder embed.Embedder, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		cfg:      cfg,
		embedder: embedder,
		logger:   logger,
		index:    index,
	}
}

// Watch performs an initial sync, installs a recursive filesystem watch,
// and re-syncs on every debounced batch of changes until ctx is cancelled
// or the event channel closes (spec §4.7).
func (w *Watcher) Watch(ctx context.Context) error {
	root, err := filepath.Abs(w.cfg.RootPath)
	if err != nil {
		return errors.Wrapf(errors.KindIO, err, "resolve root path %s", w.cfg.RootPath)
	}

	if err := w.sync(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.KindWatch, err)
	}
	w.fsw = fsw
	defer fsw.Close()

	if err := addRecursive(fsw, root); err != nil {
		return errors.Wrapf(errors.KindWatch, err, "watch %s", root)
	}

	w.debouncer = NewDebouncer(debounceWindow)
	defer w.debouncer.Stop()

	go w.forward(ctx, root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-w.debouncer.Output():
			if !ok {
				return nil
			}
			if w.hasRelevantChange(batch) {
				if err := w.sync(ctx); err != nil {
					w.logger.Warn("watcher resync failed", slog.String("error", err.Error()))
				}
			}
		}
	}
}

// forward reads raw fsnotify events, filters and converts them, and feeds
// the debouncer. Events are hints; the debounced batch only determines
// whether to re-run discovery, not which files changed.
func (w *Watcher) forward(ctx context.Context, root string) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(root, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handleEvent(root string, event fsnotify.Event) {
	relPath, err := filepath.Rel(root, event.Name)
	if err != nil {
		relPath = event.Name
	}
	relPath = filepath.ToSlash(relPath)

	if isUnderIndexDir(w.cfg, event.Name) {
		return
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.fsw.Add(event.Name)
		}
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		op = OpDelete
	default:
		return
	}

	w.debouncer.Add(FileEvent{Path: relPath, Operation: op})
}

// hasRelevantChange reports whether batch contains at least one path worth
// triggering a resync for: an indexable extension, not under the index
// directory.
func (w *Watcher) hasRelevantChange(batch []FileEvent) bool {
	for _, e := range batch {
		if !chunk.IsIndexableExtension(e.Path) {
			continue
		}
		return true
	}
	return false
}

func (w *Watcher) sync(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := indexer.UpdateIndex(ctx, w.cfg, w.index, w.embedder, nil)
	return err
}

func isUnderIndexDir(cfg *config.Config, absPath string) bool {
	rel, err := filepath.Rel(cfg.IndexDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && rel != "")
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
