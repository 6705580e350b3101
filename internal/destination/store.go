package destination

import (
	"sync"
	"sync/atomic"
	"time"
)

// Store holds the current destination collection.
// Readers get an immutable Snapshot; Replace swaps the whole collection at once.
type Store struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes writers so versions stay monotonic
	now     func() time.Time
}

// NewStore returns an empty store at version 0.
func NewStore() *Store {
	s := &Store{now: time.Now}
	s.current.Store(&Snapshot{Destinations: []Destination{}})
	return s
}

// Snapshot returns the collection currently installed.
func (s *Store) Snapshot() Snapshot {
	return *s.current.Load()
}

// Replace installs destinations as the new collection and returns the new snapshot.
// The caller must not modify the slice afterwards.
func (s *Store) Replace(destinations []Destination) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if destinations == nil {
		destinations = []Destination{}
	}

	next := &Snapshot{
		Destinations: destinations,
		Version:      s.current.Load().Version + 1,
		LoadedAt:     s.now().UTC(),
	}
	s.current.Store(next)
	return *next
}
