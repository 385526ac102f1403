package quizzes

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/store"
)

var ErrNoSessionID = errors.New("quiz has no session id")

type StoreRepository struct {
	s store.Store
}

func NewStoreRepository(s store.Store) *StoreRepository {
	return &StoreRepository{s: s}
}

func (r *StoreRepository) Get(ctx context.Context, sessionID string) (*models.Quiz, error) {
	all, _, err := store.GetJSON[map[string]models.Quiz](ctx, r.s, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz[%s]: %w", sessionID, err)
	}
	q, ok := all[sessionID]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *StoreRepository) Save(ctx context.Context, q models.Quiz) error {
	if q.SessionID == "" {
		return ErrNoSessionID
	}
	err := store.UpdateJSON(ctx, r.s, Key, func(all map[string]models.Quiz) (map[string]models.Quiz, error) {
		if all == nil {
			all = make(map[string]models.Quiz)
		}
		all[q.SessionID] = q
		return all, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save quiz[%s]: %w", q.SessionID, err)
	}
	return nil
}
