package storage

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements Reader.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return clone(value), true, nil
}

// Set implements Writer.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = clone(value)
	return nil
}

// Delete implements Writer.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Update holds the store lock for the duration of fn and applies staged
// writes only when fn succeeds.
func (m *Memory) Update(ctx context.Context, fn func(context.Context, Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &memoryTx{store: m, staged: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for key, value := range tx.staged {
		if value == nil {
			delete(m.data, key)
			continue
		}
		m.data[key] = value
	}
	return nil
}

// Keys implements Store.
func (m *Memory) Keys(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

type memoryTx struct {
	store *Memory
	// nil values mark deletions.
	staged map[string][]byte
}

func (tx *memoryTx) Get(_ context.Context, key string) ([]byte, bool, error) {
	if value, ok := tx.staged[key]; ok {
		if value == nil {
			return nil, false, nil
		}
		return clone(value), true, nil
	}
	value, ok := tx.store.data[key]
	if !ok {
		return nil, false, nil
	}
	return clone(value), true, nil
}

func (tx *memoryTx) Set(_ context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	tx.staged[key] = clone(value)
	return nil
}

func (tx *memoryTx) Delete(_ context.Context, key string) error {
	tx.staged[key] = nil
	return nil
}

func clone(value []byte) []byte {
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
