package content

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Store keeps the entries of one directory in memory.
type Store struct {
	dir string

	mu      sync.RWMutex
	entries []Entry
	loaded  time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Reload re-reads the directory. On failure the previous entries are kept.
func (s *Store) Reload() error {
	entries, err := LoadEntries(s.dir)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries = entries
	s.loaded = time.Now()
	s.mu.Unlock()
	return nil
}

// Entries returns the cached entries, loading them on first use.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	entries, loaded := s.entries, !s.loaded.IsZero()
	s.mu.RUnlock()

	if !loaded {
		if err := s.Reload(); err != nil {
			log.Printf("content: load %s: %v", s.dir, err)
			return []Entry{}
		}
		s.mu.RLock()
		entries = s.entries
		s.mu.RUnlock()
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Watch reloads the store whenever a markdown file in the directory changes.
// It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".md") || event.Op == fsnotify.Chmod {
				continue
			}
			if err := s.Reload(); err != nil {
				log.Printf("content: reload %s: %v", s.dir, err)
				continue
			}
			log.Printf("content: reloaded %s (%s)", s.dir, event.Op)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("content: watcher error: %v", err)
		}
	}
}
