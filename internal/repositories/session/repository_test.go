package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/examoracle/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewStoreRepository(s)
	ctx := context.Background()

	tok, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, r.Set(ctx, "token-1"))
	tok, err = r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)

	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))
	tok, err = r.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSession_ClosedStore(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Close())
	r := NewStoreRepository(s)

	_, err := r.Get(context.Background())
	require.ErrorIs(t, err, store.ErrClosed)
	require.ErrorIs(t, r.Set(context.Background(), "x"), store.ErrClosed)
}

func TestSecret_GeneratedOnce(t *testing.T) {
	s := store.NewMemoryStore()
	r := NewStoreRepository(s)
	ctx := context.Background()

	first, err := r.Secret(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := NewStoreRepository(s).Secret(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, r.Clear(ctx))
	third, err := r.Secret(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, third, "logout keeps the signing key")
}
