package repositories

import (
	"context"
	"sync"
)

type memoryCartStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryCartStorage() CartStorage {
	return &memoryCartStorage{values: make(map[string]string)}
}

func (s *memoryCartStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *memoryCartStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
