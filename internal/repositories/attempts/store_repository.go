package attempts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/store"
)

type StoreRepository struct {
	s store.Store
}

func NewStoreRepository(s store.Store) *StoreRepository {
	return &StoreRepository{s: s}
}

func (r *StoreRepository) List(ctx context.Context) ([]models.QuizAttempt, error) {
	list, _, err := store.GetJSON[[]models.QuizAttempt](ctx, r.s, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return list, nil
}

func (r *StoreRepository) Append(ctx context.Context, a models.QuizAttempt, retain int) error {
	err := store.UpdateJSON(ctx, r.s, Key, func(list []models.QuizAttempt) ([]models.QuizAttempt, error) {
		list = append(list, a)
		if retain > 0 {
			list = trimUser(list, a.UserID, retain)
		}
		return list, nil
	})
	if err != nil {
		return fmt.Errorf("failed to append attempt[%s]: %w", a.ID, err)
	}
	return nil
}

// trimUser drops the oldest attempts of userID until at most retain remain.
// Other users' attempts and the relative order are untouched.
func trimUser(list []models.QuizAttempt, userID string, retain int) []models.QuizAttempt {
	owned := 0
	for _, a := range list {
		if a.UserID == userID {
			owned++
		}
	}
	excess := owned - retain
	if excess <= 0 {
		return list
	}

	out := list[:0]
	for _, a := range list {
		if a.UserID == userID && excess > 0 {
			excess--
			continue
		}
		out = append(out, a)
	}
	return out
}
