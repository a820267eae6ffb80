// Package memory provides a process-local SessionStore.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
	"github.com/louisbranch/chess-mcp/internal/services/chess/storage"
)

// entry guards one session; the table lock is never held while mu is.
type entry struct {
	mu      sync.Mutex
	session *game.Session
	deleted bool
}

// Store is a thread-safe in-memory session store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

var _ storage.SessionStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Create stores a copy of session under its id.
func (s *Store) Create(ctx context.Context, session *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil || session.ID == "" {
		return fmt.Errorf("create session: id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("create session %s: %w", session.ID, storage.ErrSessionExists)
	}
	s.sessions[session.ID] = &entry{session: session.Clone()}
	return nil
}

// Get returns a copy of the session.
func (s *Store) Get(ctx context.Context, id string) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := s.lookup(id)
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, game.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

// Update applies mutate to a copy of the session and stores it on success.
func (s *Store) Update(ctx context.Context, id string, mutate storage.MutateFunc) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := s.lookup(id)
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return nil, game.ErrSessionNotFound
	}
	next := e.session.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = id
	e.session = next
	return next.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return game.ErrSessionNotFound
	}
	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()
	return nil
}

// List returns copies of all sessions ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]*game.Session, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.deleted {
			out = append(out, e.session.Clone())
		}
		e.mu.Unlock()
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	return e, ok
}
