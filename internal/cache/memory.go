package cache

import (
	"context"
	"sync"
)

var _ Counter = (*MemoryCounter)(nil)

// MemoryCounter is an in-process Counter used in tests and single-node
// deployments without redis.
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]map[string]int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		counts: make(map[string]map[string]int64),
	}
}

func (m *MemoryCounter) Incr(ctx context.Context, key, contentID string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.counts[key] == nil {
		m.counts[key] = make(map[string]int64)
	}
	m.counts[key][contentID] += delta
	return m.counts[key][contentID], nil
}

func (m *MemoryCounter) Drain(ctx context.Context, key string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deltas := m.counts[key]
	delete(m.counts, key)
	if deltas == nil {
		deltas = map[string]int64{}
	}
	return deltas, nil
}
