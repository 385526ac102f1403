// Package attempts persists the global quiz attempt log under the
// "oracle_quiz_attempts" key of the record store.
package attempts

import (
	"context"

	"github.com/dmitrijs2005/examoracle/internal/models"
)

// Key is the record store key holding the attempt log.
const Key = "oracle_quiz_attempts"

type Repository interface {
	// List returns every attempt in insertion order.
	List(ctx context.Context) ([]models.QuizAttempt, error)
	// Append adds a to the log and keeps at most retain attempts of a.UserID,
	// dropping the oldest. retain <= 0 disables trimming.
	Append(ctx context.Context, a models.QuizAttempt, retain int) error
}
