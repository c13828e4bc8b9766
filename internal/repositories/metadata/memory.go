package metadata

import (
	"context"
	"maps"
	"sync"
)

// MemoryRepository keeps values in a map. It is safe for concurrent use.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *MemoryRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = append([]byte(nil), value...)
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range values {
		r.data[k] = append([]byte(nil), v...)
	}
	return nil
}

// Snapshot returns a copy of every stored pair.
func (r *MemoryRepository) Snapshot() map[string][]byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := maps.Clone(r.data)
	for k, v := range out {
		out[k] = append([]byte(nil), v...)
	}
	return out
}
