package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/planopro/internal/domain"
)

type entry struct {
	state    domain.SidebarState
	lastSeen time.Time
}

// Store keeps sidebar states in process memory. It is the default when no
// Redis address is configured, and loses everything on restart.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry // session ID -> state
	now     func() time.Time
}

// New creates an empty memory store
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the state for id, or the zero state if none is stored.
// A hit refreshes the entry's last-seen time.
func (s *Store) Get(_ context.Context, id string) (domain.SidebarState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return domain.SidebarState{}, nil
	}
	e.lastSeen = s.now()
	s.entries[id] = e
	return e.state, nil
}

// Save stores state for id
func (s *Store) Save(_ context.Context, id string, state domain.SidebarState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = entry{state: state, lastSeen: s.now()}
	return nil
}

// Delete removes the state for id
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Active returns Count.
func (s *Store) Active(context.Context) (int, error) { return s.Count(), nil }

// Count returns the number of stored states
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Sweep removes states not seen for longer than idle and returns how many
// were removed.
func (s *Store) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
