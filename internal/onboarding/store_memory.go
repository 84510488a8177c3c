package onboarding

import (
	"context"
	"sync"
)

// InMemorySessionStore keeps sessions in a mutex guarded map. Suitable for a
// single process deployment; the redis store covers anything else.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[int64]*Session)}
}

func (s *InMemorySessionStore) Find(_ context.Context, chatID int64) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *InMemorySessionStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[session.ChatID] = &clone
	return nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}
