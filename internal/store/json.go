package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the value at key into T. ok is false when the key is absent.
func GetJSON[T any](ctx context.Context, s Store, key string) (value T, ok bool, err error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return value, false, err
	}
	if raw == nil {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decode record[%s]: %w", key, err)
	}
	return value, true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record[%s]: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpdateJSON atomically decodes the value at key (zero T when absent), applies
// fn and stores the result.
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(current T) (T, error)) error {
	return s.Update(ctx, key, func(raw []byte) ([]byte, error) {
		var current T
		if raw != nil {
			if err := json.Unmarshal(raw, &current); err != nil {
				return nil, fmt.Errorf("decode record[%s]: %w", key, err)
			}
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		out, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encode record[%s]: %w", key, err)
		}
		return out, nil
	})
}
