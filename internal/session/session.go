// Package session holds transient, process-lifetime per-user state: the
// current intention and the pending mystery card. Nothing here survives a
// restart; persistent state lives behind internal/store.
package session

import (
	"sync"
	"time"

	"github.com/arcanara/arcanara/internal/domain"
)

// Mystery is a pending hidden draw awaiting reveal.
type Mystery struct {
	CardName    string
	Orientation domain.Orientation
	DrawnAt     time.Time
}

// Store is a concurrency-safe per-user session map. Operations on
// different users never interact; same-user same-key races resolve
// last-write-wins.
type Store struct {
	mu         sync.Mutex
	intentions map[string]string
	mysteries  map[string]Mystery
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		intentions: make(map[string]string),
		mysteries:  make(map[string]Mystery),
	}
}

// SetIntention overwrites the user's current intention. No history is kept.
func (s *Store) SetIntention(userID, intention string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intentions[userID] = intention
}

// Intention returns the user's current intention, if set.
func (s *Store) Intention(userID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intention, ok := s.intentions[userID]
	return intention, ok
}

// BeginMystery stores a pending reveal for the user, silently replacing any
// unrevealed prior one.
func (s *Store) BeginMystery(userID, cardName string, o domain.Orientation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mysteries[userID] = Mystery{
		CardName:    cardName,
		Orientation: o,
		DrawnAt:     time.Now().UTC(),
	}
}

// ConsumeMystery atomically returns and clears the user's pending mystery.
// The second return is false when nothing is pending, a normal
// reportable outcome rather than an error.
func (s *Store) ConsumeMystery(userID string) (Mystery, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mysteries[userID]
	if ok {
		delete(s.mysteries, userID)
	}
	return m, ok
}

// Forget clears all transient state for the user. Used by the cascading
// user-data erase.
func (s *Store) Forget(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.intentions, userID)
	delete(s.mysteries, userID)
}
