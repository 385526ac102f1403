package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/examoracle/internal/common"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/store"
)

type StoreRepository struct {
	s store.Store
}

func NewStoreRepository(s store.Store) *StoreRepository {
	return &StoreRepository{s: s}
}

// SameEmail compares addresses ignoring case and surrounding blanks.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (r *StoreRepository) List(ctx context.Context) ([]models.Credential, error) {
	list, _, err := store.GetJSON[[]models.Credential](ctx, r.s, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return list, nil
}

func (r *StoreRepository) find(ctx context.Context, match func(c models.Credential) bool) (*models.Credential, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if match(list[i]) {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (r *StoreRepository) FindByEmail(ctx context.Context, email string) (*models.Credential, error) {
	return r.find(ctx, func(c models.Credential) bool { return SameEmail(c.Email, email) })
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*models.Credential, error) {
	return r.find(ctx, func(c models.Credential) bool { return c.ID == id })
}

func (r *StoreRepository) Create(ctx context.Context, c models.Credential) error {
	err := store.UpdateJSON(ctx, r.s, Key, func(list []models.Credential) ([]models.Credential, error) {
		for _, existing := range list {
			if SameEmail(existing.Email, c.Email) {
				return nil, ErrEmailExists
			}
		}
		return append(list, c), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create user[%s]: %w", c.Email, err)
	}
	return nil
}

func (r *StoreRepository) Update(ctx context.Context, id string, fn func(c *models.Credential) error) (*models.Credential, error) {
	var updated models.Credential

	err := store.UpdateJSON(ctx, r.s, Key, func(list []models.Credential) ([]models.Credential, error) {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if err := fn(&list[i]); err != nil {
				return nil, err
			}
			updated = list[i]
			return list, nil
		}
		return nil, common.ErrorNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user[%s]: %w", id, err)
	}
	return &updated, nil
}
