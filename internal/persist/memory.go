// internal/persist/memory.go
//
// In-memory KV implementation. Used in tests and when durability is
// not required; state is lost when the process restarts.
// Concurrency-safe via RWMutex (concurrent reads allowed, writes
// exclusive).

package persist

import (
	"context"
	"sync"
)

type memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory constructs an empty in-memory KV.
func NewMemory() KV {
	return &memory{data: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cp
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
