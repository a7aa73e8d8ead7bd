// internal/store/memory.go
//
// In-memory game store used by the HTTP surface.
//
// Characteristics:
//   - Stores *play.Controller values (one per game) keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Entries idle for longer than the configured TTL are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/play"
)

// ErrNotFound is returned by Get for unknown or expired IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game controllers.
type Store interface {
	// Save adds or replaces a controller under its session ID.
	Save(ctx context.Context, c *play.Controller) error

	// Get retrieves a controller by ID and refreshes its idle timer.
	// Returns ErrNotFound if the game is unknown.
	Get(ctx context.Context, id string) (*play.Controller, error)

	// Len reports the number of stored games.
	Len() int
}

type entry struct {
	c        *play.Controller
	lastSeen time.Time
}

// Memory is an in-memory map-based Store implementation.
type Memory struct {
	mu    sync.RWMutex      // guards games
	games map[string]*entry // keyed by Session.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]*entry), now: time.Now}
}

// Save adds or updates the controller in the map.
func (m *Memory) Save(ctx context.Context, c *play.Controller) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[c.Session().ID] = &entry{c: c, lastSeen: m.now()}
	return nil
}

// Get looks up a controller by ID.
func (m *Memory) Get(ctx context.Context, id string) (*play.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.c, nil
}

// Len reports the number of stored games.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Sweep removes games not accessed within ttl and returns how many were dropped.
func (m *Memory) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-ttl)
	n := 0
	for id, e := range m.games {
		if e.lastSeen.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
