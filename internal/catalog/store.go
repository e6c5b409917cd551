package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Store caches parsed catalogs by absolute path. Catalogs are immutable, so
// one parsed copy is shared by every request that names the same file.
type Store struct {
	opts Options
	log  *zap.Logger

	load func(path string, opts Options) (*Catalog, *LoadReport, error)

	mu      sync.RWMutex
	entries map[string]*entry
	// gens counts invalidations per path. A parse that started before an
	// invalidation is returned to its caller but not cached.
	gens    map[string]uint64
}

type entry struct {
	cat    *Catalog
	report *LoadReport
}

// NewStore returns an empty store. A nil logger disables logging.
func NewStore(opts Options, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		opts:    opts,
		log:     log,
		load:    Load,
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
	}
}

// Get returns the catalog at path, parsing it on first use.
func (s *Store) Get(path string) (*Catalog, *LoadReport, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving catalog path: %w", err)
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	gen := s.gens[key]
	s.mu.RUnlock()
	if ok {
		return e.cat, e.report, nil
	}

	cat, report, err := s.load(key, s.opts)
	if err != nil {
		return nil, report, err
	}
	for _, skip := range report.Skipped {
		s.log.Warn("catalog row skipped",
			zap.String("path", key),
			zap.Int("line", skip.Line),
			zap.String("reason", skip.Reason))
	}
	s.log.Info("catalog loaded",
		zap.String("path", key),
		zap.Int("courses", report.Courses),
		zap.Int("skipped", len(report.Skipped)))

	s.mu.Lock()
	stale := s.gens[key] != gen
	if !stale {
		s.entries[key] = &entry{cat: cat, report: report}
	}
	s.mu.Unlock()
	if stale {
		s.log.Debug("catalog changed while loading; not cached", zap.String("path", key))
	}
	return cat, report, nil
}

// Invalidate drops the cached copy of path.
func (s *Store) Invalidate(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		return
	}
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.gens[key]++
	s.mu.Unlock()
	if ok {
		s.log.Info("catalog invalidated", zap.String("path", key))
	}
}

// Cached reports whether path currently has a parsed copy.
func (s *Store) Cached(path string) bool {
	key, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok
}

// Watch invalidates cached catalogs when their files change on disk. It
// watches the parent directories of paths (editors often replace files by
// rename) and blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, paths ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}
	defer w.Close()

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving catalog path: %w", err)
		}
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
		s.log.Debug("watching catalog directory", zap.String("dir", dir))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.Invalidate(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Error("catalog watcher", zap.Error(err))
		}
	}
}
