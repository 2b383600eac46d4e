// internal/game/store.go
//
// In-memory game store used by the HTTP server.
// State is lost on restart. Concurrency-safe via RWMutex; callers only ever
// see copies, and updates go through Update so two guesses on the same game
// cannot interleave.

package game

import (
	"errors"
	"sync"
)

var ErrGameNotFound = errors.New("game not found")

type Store struct {
	mu    sync.RWMutex     // guards games
	games map[string]*Game // keyed by game ID
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{games: make(map[string]*Game)}
}

// Put saves a copy of g.
func (s *Store) Put(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g.clone()
}

// Get returns a copy of the game with the given ID.
func (s *Store) Get(id string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g.clone(), nil
}

// Update runs fn on the stored game under the write lock. Changes made by fn
// are kept only when it returns nil. The returned game is a copy.
func (s *Store) Update(id string, fn func(*Game) error) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	work := g.clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	s.games[id] = work
	return work.clone(), nil
}

// Len is the number of stored games.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
