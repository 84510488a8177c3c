package blob

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// InMemoryStore keeps uploads in memory. Used in tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{objects: make(map[string][]byte)}
}

func (s *InMemoryStore) Upload(_ context.Context, key string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return "mem://" + key, nil
}

// Get returns a stored object, for test assertions.
func (s *InMemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
