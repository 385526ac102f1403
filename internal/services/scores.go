package services

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/logging"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/repositories/attempts"
	"github.com/dmitrijs2005/examoracle/internal/repositories/quizzes"
	"github.com/dmitrijs2005/examoracle/internal/repositories/users"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// DefaultHistoryRetention is the per-user attempt cap.
	DefaultHistoryRetention = 20
	// RecentAttempts is how many attempts a summary charts.
	RecentAttempts = 10
)

// ScoreService records quiz attempts and derives history views from them.
// Storage failures are logged and yield empty results.
type ScoreService interface {
	SaveAttempt(ctx context.Context, sess *Session, a models.QuizAttempt) *models.QuizAttempt
	Attempts(ctx context.Context, userID string) []models.QuizAttempt
	SessionRankings(ctx context.Context, sessionID string) []models.QuizAttempt
	Summary(ctx context.Context, userID string) models.PerformanceSummary
	NewCollaborativeSessionID() (string, error)
	// ShareQuiz stores a collaborative quiz so others can join its session.
	ShareQuiz(ctx context.Context, q *models.Quiz) error
	// SharedQuiz loads the quiz of a collaborative session.
	SharedQuiz(ctx context.Context, sessionID string) (*models.Quiz, error)
}

type scoreService struct {
	attempts attempts.Repository
	quizzes  quizzes.Repository
	users    users.Repository
	retain   int
	log      logging.Logger
	now      func() time.Time
}

// NewScoreService wires the service. retain <= 0 selects DefaultHistoryRetention.
func NewScoreService(a attempts.Repository, q quizzes.Repository, u users.Repository, retain int, log logging.Logger) ScoreService {
	if retain <= 0 {
		retain = DefaultHistoryRetention
	}
	return &scoreService{attempts: a, quizzes: q, users: u, retain: retain, log: log, now: time.Now}
}

func (s *scoreService) SaveAttempt(ctx context.Context, sess *Session, a models.QuizAttempt) *models.QuizAttempt {
	if sess == nil {
		return nil
	}
	owner, err := s.users.FindByID(ctx, sess.User.ID)
	if err != nil {
		s.log.Error(ctx, "attempt owner lookup failed", "user_id", sess.User.ID, "error", err)
		return nil
	}
	if owner == nil {
		s.log.Warn(ctx, "attempt dropped: user no longer exists", "user_id", sess.User.ID)
		return nil
	}

	a.ID = uuid.NewString()
	a.UserID = owner.ID
	a.UserName = owner.Name
	a.Timestamp = s.now().UnixMilli()
	a.Percentage = models.Percentage(a.Score, a.Total)

	if err := s.attempts.Append(ctx, a, s.retain); err != nil {
		s.log.Error(ctx, "attempt not saved", "user_id", owner.ID, "error", err)
		return nil
	}

	s.log.Info(ctx, "attempt saved", "user_id", owner.ID, "score", a.Score, "total", a.Total)
	return &a
}

func (s *scoreService) Attempts(ctx context.Context, userID string) []models.QuizAttempt {
	all, err := s.attempts.List(ctx)
	if err != nil {
		s.log.Error(ctx, "attempt history unreadable", "error", err)
		return []models.QuizAttempt{}
	}
	if userID == "" {
		return all
	}
	out := []models.QuizAttempt{}
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

// SessionRankings orders a shared quiz's attempts by score, fastest first
// among equal scores.
func (s *scoreService) SessionRankings(ctx context.Context, sessionID string) []models.QuizAttempt {
	out := []models.QuizAttempt{}
	if sessionID == "" {
		return out
	}
	for _, a := range s.Attempts(ctx, "") {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b models.QuizAttempt) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.TimeTaken, b.TimeTaken)
	})
	return out
}

func (s *scoreService) Summary(ctx context.Context, userID string) models.PerformanceSummary {
	history := s.Attempts(ctx, userID)
	sum := models.PerformanceSummary{
		Attempts: len(history),
		Recent:   history[max(0, len(history)-RecentAttempts):],
	}
	if len(history) == 0 {
		sum.Mastery = models.MasteryFor(0)
		return sum
	}

	total := 0
	for _, a := range history {
		total += a.Percentage
		sum.BestPercent = max(sum.BestPercent, a.Percentage)
	}
	sum.AveragePercent = int(math.Round(float64(total) / float64(len(history))))
	sum.Mastery = models.MasteryFor(sum.AveragePercent)
	return sum
}

func (s *scoreService) NewCollaborativeSessionID() (string, error) {
	return gonanoid.New()
}

func (s *scoreService) ShareQuiz(ctx context.Context, q *models.Quiz) error {
	if q == nil || q.SessionID == "" {
		return fmt.Errorf("%w: quiz has no session id", ErrInvalidInput)
	}
	if err := s.quizzes.Save(ctx, *q); err != nil {
		return err
	}
	s.log.Info(ctx, "quiz shared", "session_id", q.SessionID, "questions", len(q.Questions))
	return nil
}

func (s *scoreService) SharedQuiz(ctx context.Context, sessionID string) (*models.Quiz, error) {
	q, err := s.quizzes.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return q, nil
}
