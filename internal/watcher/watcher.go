// Package watcher monitors a vault for markdown writes and feeds them to the
// sync pipeline, one document at a time.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-mdsync/internal/logging"
	"github.com/goliatone/go-mdsync/internal/syncer"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

const defaultDebounce = 2 * time.Second

// ErrServiceRequired is returned when the watcher is built without a sync service.
var ErrServiceRequired = errors.New("watcher: sync service is required")

// Config wires the watcher's collaborators.
type Config struct {
	// VaultPath is the directory tree to monitor.
	VaultPath string
	// Service receives one ProcessDocument call per settled write.
	Service *syncer.Service
	// Debounce is the quiet window before a changed file is processed.
	// Zero means the default of two seconds.
	Debounce time.Duration
	Logger   interfaces.Logger
}

// Watcher tails a vault directory and pushes settled markdown writes through
// the sync service. Events are debounced per run and processed sequentially
// so two writes never race on the same backend records.
type Watcher struct {
	vaultPath string
	service   *syncer.Service
	debounce  time.Duration
	logger    interfaces.Logger
}

// New constructs a vault watcher.
func New(cfg Config) (*Watcher, error) {
	if cfg.Service == nil {
		return nil, ErrServiceRequired
	}
	if strings.TrimSpace(cfg.VaultPath) == "" {
		return nil, errors.New("watcher: vault path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		vaultPath: cfg.VaultPath,
		service:   cfg.Service,
		debounce:  debounce,
		logger:    logger,
	}, nil
}

// Watch blocks until the context is done or the underlying notifier fails.
// Write and create events on .md files are collected over the debounce
// window, then flushed through the sync service on a single goroutine.
func (w *Watcher) Watch(ctx context.Context) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer notifier.Close()

	for _, dir := range w.walkDirs() {
		if err := notifier.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}
	w.logger.Info("watching vault", "path", w.vaultPath)

	var (
		mu      sync.Mutex
		pending = map[string]bool{}
	)
	flushCh := make(chan struct{}, 1)
	var timer *time.Timer

	scheduleFlush := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case flushCh <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-flushCh:
			mu.Lock()
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = map[string]bool{}
			mu.Unlock()
			w.flush(ctx, paths)

		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".md") {
				// New subdirectories join the watch set.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := notifier.Add(event.Name); err != nil {
							w.logger.Warn("cannot watch directory", "dir", event.Name, "error", err)
						}
					}
				}
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				mu.Lock()
				pending[event.Name] = true
				scheduleFlush()
				mu.Unlock()
			}

		case err, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// flush processes settled paths sequentially. A failing document is logged
// and never blocks its siblings.
func (w *Watcher) flush(ctx context.Context, paths []string) {
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			// File vanished between the event and the flush.
			continue
		}
		if err := w.service.ProcessDocument(ctx, syncer.NewFileDocument(path)); err != nil {
			w.logger.Error("document sync failed", "path", path, "error", err)
		}
	}
}

func (w *Watcher) walkDirs() []string {
	var dirs []string
	filepath.WalkDir(w.vaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != w.vaultPath {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}
