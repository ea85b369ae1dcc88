package store

import (
	"context"
	"sync"
)

// memoryStore is a mutex-guarded in-memory [KeyValueStore]. It backs tests
// and the "memory" driver, and is trivially atomic, so it also implements
// [BatchWriter].
type memoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string // namespace -> key -> value
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() KeyValueStore {
	return &memoryStore{
		data: make(map[string]map[string]string),
	}
}

func (s *memoryStore) Put(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]string)
		s.data[namespace] = ns
	}
	ns[key] = value

	return nil
}

func (s *memoryStore) PutAll(_ context.Context, namespace string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]string, len(entries))
		s.data[namespace] = ns
	}
	for key, value := range entries {
		ns[key] = value
	}

	return nil
}

func (s *memoryStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[namespace][key]
	return value, ok, nil
}

func (s *memoryStore) Remove(_ context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[namespace], key)
	return nil
}

func (s *memoryStore) Contains(_ context.Context, namespace, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[namespace][key]
	return ok, nil
}
