package service

import (
	"sync"

	"chatscrub/internal/services/transcript/domain"
)

// Store holds processed sessions in memory, keyed by uuid. Sessions are
// immutable after Put, so reads need no copying
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewStore builds an empty session store
func NewStore() *Store {
	return &Store{sessions: make(map[string]*domain.Session)}
}

// Put stores a session under its id
func (s *Store) Put(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get returns a session by id
func (s *Store) Get(id string) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete removes a session by id, reporting whether it existed
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len reports the number of stored sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
