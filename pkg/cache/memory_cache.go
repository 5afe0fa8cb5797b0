package cache

import (
	"context"
	"sync"
)

// memoryCache is a process-local Cache. Nothing survives a restart.
type memoryCache struct {
	mu     sync.Mutex
	hashes map[string]map[string]string
	lists  map[string][]string
}

func NewMemoryCache() Cache {
	return &memoryCache{
		hashes: make(map[string]map[string]string),
		lists:  make(map[string][]string),
	}
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func (m *memoryCache) PushUnique(_ context.Context, hashKey, listKey, field, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.hashes[hashKey]
	if !ok {
		h = make(map[string]string)
		m.hashes[hashKey] = h
	}
	if _, exists := h[field]; exists {
		return false, nil
	}
	h[field] = value
	m.lists[listKey] = append([]string{field}, m.lists[listKey]...)
	return true, nil
}

func (m *memoryCache) Ordered(_ context.Context, hashKey, listKey string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.hashes[hashKey]
	out := make([]string, 0, len(m.lists[listKey]))
	for _, field := range m.lists[listKey] {
		if v, ok := h[field]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}
