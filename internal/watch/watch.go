package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/yoanbernabeu/localpages/internal/constants"
)

// Watcher reports changes to a fixed set of files. Bursts of events, such
// as an editor saving through a temp file, are coalesced into one call.
type Watcher struct {
	fs     *fsnotify.Watcher
	logger *zap.Logger
	files  map[string]bool

	debounce func(func())
	ready    chan struct{}

	mu      sync.Mutex
	pending map[string]bool
}

// New watches paths and their .local overrides. Parent directories are
// watched so files replaced by rename keep being tracked.
func New(paths []string, delay time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = constants.WatchDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		logger:   logger,
		files:    make(map[string]bool),
		debounce: debounce.New(delay),
		ready:    make(chan struct{}, 1),
		pending:  make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = true
		w.files[constants.LocalOverride(abs)] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("watching directory", zap.String("dir", dir))
	}

	return w, nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Run calls onChange with the files changed since the previous call until
// ctx is cancelled. Calls never overlap. An error from onChange is logged
// and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string) error) error {
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.record(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-w.ready:
			changed := w.drain()
			if len(changed) == 0 {
				continue
			}
			w.logger.Debug("files changed", zap.Strings("files", changed))
			if err := onChange(ctx, changed); err != nil {
				w.logger.Error("change handler failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) record(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	name := filepath.Clean(event.Name)
	if !w.files[name] {
		return
	}

	w.mu.Lock()
	w.pending[name] = true
	w.mu.Unlock()

	w.debounce(func() {
		select {
		case w.ready <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for f := range w.pending {
		changed = append(changed, f)
	}
	sort.Strings(changed)
	w.pending = make(map[string]bool)
	return changed
}
