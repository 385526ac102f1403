package users

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/examoracle/internal/models"
)

// Key is the record store key holding the user table.
const Key = "oracle_users"

// ErrEmailExists is returned by Create for an already registered email.
var ErrEmailExists = errors.New("email already exists")

type Repository interface {
	List(ctx context.Context) ([]models.Credential, error)
	// FindByEmail returns nil, nil when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.Credential, error)
	// FindByID returns nil, nil when the id is unknown.
	FindByID(ctx context.Context, id string) (*models.Credential, error)
	Create(ctx context.Context, c models.Credential) error
	// Update applies fn to the record with the given id and persists the
	// whole table. Unknown ids fail with common.ErrorNotFound.
	Update(ctx context.Context, id string, fn func(c *models.Credential) error) (*models.Credential, error)
}
