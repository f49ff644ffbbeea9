package storage

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore keeps serialized values in process memory. It is the default
// backend for a single storefront instance and the one used in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string][]byte),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string, value any) (bool, error) {
	m.mu.RLock()
	data, ok := m.store[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := decode(key, data, value); err != nil {
		return false, err
	}

	return true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = data
	return nil
}

// SetRaw stores data under key without encoding it.
func (m *MemoryStore) SetRaw(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = append([]byte(nil), data...)
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, key string, value any, fn func(found bool) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	if data, ok := m.store[key]; ok {
		err := decode(key, data, value)
		if err != nil && !errors.Is(err, ErrMalformed) {
			return err
		}
		found = err == nil
	} else {
		reset(value)
	}

	if err := fn(found); err != nil {
		return err
	}

	data, err := encode(key, value)
	if err != nil {
		return err
	}

	m.store[key] = data
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
