package cartstore

import (
	"context"
	"sync"
)

// Storage persists cart items between sessions.
type Storage interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
	Clear(ctx context.Context) error
}

// MemoryStorage keeps items in process memory. Used for tests and for
// sessions that opted out of durable storage.
type MemoryStorage struct {
	mu    sync.Mutex
	items []Item
	saved bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(ctx context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, nil
	}
	return append([]Item(nil), m.items...), nil
}

func (m *MemoryStorage) Save(ctx context.Context, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]Item(nil), items...)
	m.saved = true
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	m.saved = false
	return nil
}
