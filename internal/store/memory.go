package store

import (
	"context"
	"sync"

	"github.com/skyburst-games/popmeta/internal/domain"
)

// MemoryStore is the in-process fallback used when no database is configured
// and in tests. Data does not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, playerID, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.slots[playerID][slot]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryStore) Put(_ context.Context, playerID, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.slots[playerID] == nil {
		m.slots[playerID] = make(map[string][]byte)
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.slots[playerID][slot] = stored
	return nil
}

func (m *MemoryStore) Close() {}
