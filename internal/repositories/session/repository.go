// Package session persists the signed pointer to the active user under the
// "oracle_current_session" key of the record store.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/examoracle/internal/common"
	"github.com/dmitrijs2005/examoracle/internal/store"
)

const (
	// Key is the record store key holding the session token.
	Key = "oracle_current_session"
	// SecretKey holds the generated signing key when none is configured.
	SecretKey = "oracle_session_secret"
)

type Repository interface {
	// Get returns "" when no session is stored.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	// Secret returns the stored signing key, generating it on first use.
	Secret(ctx context.Context) ([]byte, error)
}

type StoreRepository struct {
	s store.Store
}

func NewStoreRepository(s store.Store) *StoreRepository {
	return &StoreRepository{s: s}
}

func (r *StoreRepository) Get(ctx context.Context) (string, error) {
	raw, err := r.s.Get(ctx, Key)
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return string(raw), nil
}

func (r *StoreRepository) Set(ctx context.Context, token string) error {
	if err := r.s.Set(ctx, Key, []byte(token)); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

func (r *StoreRepository) Clear(ctx context.Context) error {
	if err := r.s.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (r *StoreRepository) Secret(ctx context.Context) ([]byte, error) {
	var secret []byte
	err := r.s.Update(ctx, SecretKey, func(current []byte) ([]byte, error) {
		if len(current) > 0 {
			secret = current
			return current, nil
		}
		hex, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, err
		}
		secret = []byte(hex)
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load session secret: %w", err)
	}
	return secret, nil
}
