package session

import (
	"context"
	"sync"
)

// MemoryStore is the in-memory Store used by tests and by handlers running
// without Redis.
type MemoryStore struct {
	mu          sync.Mutex
	persona     string
	uploadCount int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetPersona(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persona, nil
}

func (s *MemoryStore) SetPersona(ctx context.Context, persona string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona = persona
	return nil
}

func (s *MemoryStore) IncrUploadCount(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadCount++
	return s.uploadCount, nil
}
