package game

import (
	"sync"

	"github.com/samber/lo"
)

// SessionStore manages every live session in memory, keyed by session id.
// Insertion order is preserved so the directory listing stays stable. The
// store is owned exclusively by the Manager; nothing else mutates it.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string
}

// NewSessionStore returns an empty in-memory store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
	}
}

// Add stores the session and records its position in insertion order.
func (s *SessionStore) Add(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; !exists {
		s.order = append(s.order, session.ID)
	}
	s.sessions[session.ID] = session
}

// Get retrieves a session if it exists.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes the session from the store.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	s.order = lo.Without(s.order, id)
}

// List returns every live session in insertion order.
func (s *SessionStore) List() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, id := range s.order {
		if session, ok := s.sessions[id]; ok {
			sessions = append(sessions, session)
		}
	}
	return sessions
}

// Len reports how many sessions are live.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
