package metadata

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// BatchSetter is implemented by drivers that can write several keys as one
// atomic unit.
type BatchSetter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}
