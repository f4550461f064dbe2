// Package library serves flight logs from a directory of JSONL exports,
// keeping each parsed log and its resolved schema in memory until the file
// changes on disk.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"flightplots/internal/logging"
	"flightplots/internal/schema"
	"flightplots/internal/ulog"
)

// Ext is the extension of log files served by the library.
const Ext = ".jsonl"

// ErrNotFound is returned when no log file exists for an id.
var ErrNotFound = errors.New("log not found")

// Entry is a cached log with its resolved aliases.
type Entry struct {
	Log      *ulog.Log
	Aliases  schema.Aliases
	Path     string
	LoadedAt time.Time
}

// Library is a cache of parsed logs keyed by file stem.
type Library struct {
	dir     string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]*Entry
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Open creates a library over dir and starts watching it for changes.
func Open(ctx context.Context, dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open log directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open log directory: %s is not a directory", dir)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	lib := &Library{
		dir:     dir,
		logger:  logging.FromContext(ctx).With("component", "library"),
		entries: map[string]*Entry{},
		watcher: w,
		done:    make(chan struct{}),
	}
	go lib.processEvents()
	return lib, nil
}

// Dir returns the watched directory.
func (lib *Library) Dir() string { return lib.dir }

// List returns the ids of all log files in the directory, sorted.
func (lib *Library) List() ([]string, error) {
	entries, err := os.ReadDir(lib.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(ids)
	return ids, nil
}

// Get returns the cached entry for id, loading and resolving the log on a
// miss.
func (lib *Library) Get(ctx context.Context, id string) (*Entry, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	lib.mu.RLock()
	e, ok := lib.entries[id]
	lib.mu.RUnlock()
	if ok {
		return e, nil
	}

	path := filepath.Join(lib.dir, id+Ext)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return nil, err
	}
	l, err := ulog.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	e = &Entry{Log: l, Aliases: schema.Resolve(l), Path: path, LoadedAt: time.Now()}

	lib.mu.Lock()
	if cur, ok := lib.entries[id]; ok {
		e = cur
	} else {
		lib.entries[id] = e
	}
	lib.mu.Unlock()
	lib.logger.Debug("log loaded", "id", id, "topics", len(l.Topics))
	return e, nil
}

// Cached reports whether id is currently held in memory.
func (lib *Library) Cached(id string) bool {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	_, ok := lib.entries[id]
	return ok
}

// Evict drops id from the cache.
func (lib *Library) Evict(id string) {
	lib.mu.Lock()
	_, ok := lib.entries[id]
	delete(lib.entries, id)
	lib.mu.Unlock()
	if ok {
		lib.logger.Debug("log evicted", "id", id)
	}
}

// Close stops the watcher.
func (lib *Library) Close() error {
	err := lib.watcher.Close()
	<-lib.done
	return err
}

func (lib *Library) processEvents() {
	defer close(lib.done)
	for {
		select {
		case event, ok := <-lib.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != Ext {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				lib.Evict(ulog.IDFromPath(event.Name))
			}
		case err, ok := <-lib.watcher.Errors:
			if !ok {
				return
			}
			lib.logger.Warn("watch error", "error", err)
		}
	}
}
