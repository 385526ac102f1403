package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/config"
	"github.com/dmitrijs2005/examoracle/internal/gateway"
	"github.com/dmitrijs2005/examoracle/internal/logging"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/repositories/attempts"
	"github.com/dmitrijs2005/examoracle/internal/repositories/quizzes"
	"github.com/dmitrijs2005/examoracle/internal/repositories/session"
	"github.com/dmitrijs2005/examoracle/internal/repositories/users"
	"github.com/dmitrijs2005/examoracle/internal/services"
	"github.com/dmitrijs2005/examoracle/internal/store"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	guide        *models.StudyGuide
	quiz         *models.Quiz
	explanations []models.SimplifiedExplanation
	replies      []string
	err          error
	chatErrs     []error

	quizOpts      gateway.QuizOptions
	quizCalls     int
	explained     []models.Concept
	chatHistories [][]models.ChatMessage
}

func (f *fakeGateway) GenerateStudyGuide(ctx context.Context, sources []models.StudySource) (*models.StudyGuide, error) {
	if f.err != nil {
		return nil, f.err
	}
	g := *f.guide
	return &g, nil
}

func (f *fakeGateway) GenerateQuiz(ctx context.Context, sources []models.StudySource, guide *models.StudyGuide, opts gateway.QuizOptions) (*models.Quiz, error) {
	f.quizOpts = opts
	f.quizCalls++
	if f.err != nil {
		return nil, f.err
	}
	q := *f.quiz
	q.SessionID = opts.SessionID
	q.Collaborative = opts.SessionID != ""
	return &q, nil
}

func (f *fakeGateway) ExplainSimply(ctx context.Context, concepts []models.Concept) ([]models.SimplifiedExplanation, error) {
	f.explained = concepts
	if f.err != nil {
		return nil, f.err
	}
	return f.explanations, nil
}

func (f *fakeGateway) Chat(ctx context.Context, sources []models.StudySource, history []models.ChatMessage, message string) (string, error) {
	f.chatHistories = append(f.chatHistories, append([]models.ChatMessage(nil), history...))
	i := len(f.chatHistories) - 1
	if i < len(f.chatErrs) && f.chatErrs[i] != nil {
		return "", f.chatErrs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", gateway.ErrEmptyResponse
}

func testGuide() *models.StudyGuide {
	return &models.StudyGuide{
		Title:              "Cell Biology",
		OracleMessage:      "The mitochondria await.",
		EstimatedStudyTime: "3 hours",
		Concepts: []models.Concept{
			{Name: "Mitochondria", Description: "Energy", SourcesFoundIn: []string{"Syllabus", "Textbook"}, OverlapIndex: 9},
			{Name: "Ribosomes", Description: "Proteins", SourcesFoundIn: []string{"Lecture Notes"}},
		},
		StudyPlan:  []string{"Read chapter 1"},
		References: []models.Reference{{Title: "Cells", URL: "https://example.org/cells"}},
	}
}

func testQuiz() *models.Quiz {
	return &models.Quiz{
		Title: "Cell Trial",
		Questions: []models.QuizQuestion{
			{Question: "Powerhouse?", Options: []string{"Mitochondria", "Ribosome", "Nucleus", "Wall"}, CorrectOptionIndex: 0, Explanation: "ATP."},
			{Question: "Protein factory?", Options: []string{"Mitochondria", "Ribosome", "Nucleus", "Wall"}, CorrectOptionIndex: 1},
		},
	}
}

type testEnv struct {
	app      *App
	out      *bytes.Buffer
	gw       *fakeGateway
	identity services.IdentityService
	scores   services.ScoreService
}

// newTestEnv builds an App on a memory store whose stdin is input.
func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	return newTestEnvReader(t, strings.NewReader(input))
}

func newTestEnvReader(t *testing.T, in io.Reader) *testEnv {
	t.Helper()

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	st := store.NewMemoryStore()
	userRepo := users.NewStoreRepository(st)
	identity := services.NewIdentityService(userRepo, session.NewStoreRepository(st), []byte("test-secret"), time.Hour, logging.Nop())
	scores := services.NewScoreService(attempts.NewStoreRepository(st), quizzes.NewStoreRepository(st), userRepo, 0, logging.Nop())

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.QuizSecondsPerQuestion = 0

	gw := &fakeGateway{guide: testGuide(), quiz: testQuiz()}
	out := &bytes.Buffer{}
	a := newApp(cfg, identity, scores, gw, logging.Nop(), in, out)
	a.store = st
	return &testEnv{app: a, out: out, gw: gw, identity: identity, scores: scores}
}

// login signs a user up directly through the service and attaches the
// session to the app.
func (e *testEnv) login(t *testing.T, email, name string) {
	t.Helper()
	sess, err := e.identity.Signup(context.Background(), email, "secret1", name)
	require.NoError(t, err)
	e.app.session = sess
}

// withSources fills two categories so the workspace is ready.
func (e *testEnv) withSources(t *testing.T) {
	t.Helper()
	_, err := e.app.workspace.AddText(models.CategorySyllabus, "", "cells and mitochondria")
	require.NoError(t, err)
	_, err = e.app.workspace.AddText(models.CategoryNotes, "", "ribosomes make proteins")
	require.NoError(t, err)
}
