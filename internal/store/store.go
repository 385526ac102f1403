package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by MemoryStore after Close.
var ErrClosed = errors.New("store closed")

// UpdateFunc receives the current value of a key (nil if absent) and returns
// the value to store. Returning a nil slice deletes the key.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is a persistent key/value record store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
