// Package quizzes keeps the quizzes of collaborative sessions under the
// "oracle_collab_quizzes" key, so every participant answers the same
// questions.
package quizzes

import (
	"context"

	"github.com/dmitrijs2005/examoracle/internal/models"
)

// Key is the record store key holding shared quizzes by session id.
const Key = "oracle_collab_quizzes"

type Repository interface {
	// Get returns nil, nil when no quiz is stored for sessionID.
	Get(ctx context.Context, sessionID string) (*models.Quiz, error)
	// Save stores q under q.SessionID, replacing an earlier quiz.
	Save(ctx context.Context, q models.Quiz) error
}
