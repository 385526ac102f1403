package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/logging"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/repositories/attempts"
	"github.com/dmitrijs2005/examoracle/internal/repositories/quizzes"
	"github.com/dmitrijs2005/examoracle/internal/repositories/session"
	"github.com/dmitrijs2005/examoracle/internal/repositories/users"
	"github.com/dmitrijs2005/examoracle/internal/store"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type fixture struct {
	store    store.Store
	users    *users.StoreRepository
	identity IdentityService
	scores   *scoreService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	u := users.NewStoreRepository(s)
	f := &fixture{
		store:    s,
		users:    u,
		identity: NewIdentityService(u, session.NewStoreRepository(s), testSecret, time.Hour, logging.Nop()),
		scores:   NewScoreService(attempts.NewStoreRepository(s), quizzes.NewStoreRepository(s), u, 0, logging.Nop()).(*scoreService),
	}
	return f
}

func (f *fixture) signup(t *testing.T, email, name string) *Session {
	t.Helper()
	sess, err := f.identity.Signup(context.Background(), email, "secret1", name)
	require.NoError(t, err)
	return sess
}

// failingAttempts fails every call.
type failingAttempts struct{ err error }

func (r failingAttempts) List(context.Context) ([]models.QuizAttempt, error) { return nil, r.err }
func (r failingAttempts) Append(context.Context, models.QuizAttempt, int) error {
	return r.err
}

var errBoom = errors.New("boom")
