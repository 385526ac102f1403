package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/gateway"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/services"
	"github.com/dmitrijs2005/examoracle/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_SignupLogoutLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, strings.Join([]string{
		"Ada", "ada@example.org", "secret1",
		"ada@example.org", "wrong-pass",
		"ADA@example.org", "secret1",
	}, "\n")+"\n")
	a := env.app

	require.NoError(t, a.Signup(ctx))
	require.True(t, a.isLoggedIn())
	assert.Equal(t, "(Ada)", a.status())
	assert.Contains(t, env.out.String(), "Welcome, Ada.")

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())

	err := a.Login(ctx)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.False(t, a.isLoggedIn())

	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "ada@example.org", a.session.User.Email)
}

func TestApp_SignupWeakPassword(t *testing.T) {
	env := newTestEnv(t, "Bob\nbob@example.org\n123\n")

	err := env.app.Signup(context.Background())
	assert.ErrorIs(t, err, services.ErrWeakPassword)
	assert.False(t, env.app.isLoggedIn())
}

func TestApp_RunRestoresSession(t *testing.T) {
	lines := captureOutput(t)
	env := newTestEnv(t, "whoami\nexit\n")
	_, err := env.identity.Signup(context.Background(), "ada@example.org", "secret1", "Ada")
	require.NoError(t, err)

	env.app.Run(context.Background())

	assert.Contains(t, *lines, "Welcome back, Ada.")
	assert.Contains(t, env.out.String(), "ada@example.org")
}

func TestApp_UploadAndRemove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	env.login(t, "ada@example.org", "Ada")
	a := env.app

	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(notes, []byte("# Cells"), 0o600))
	blob := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(blob, []byte{0, 1, 2, 3}, 0o600))

	require.NoError(t, a.Upload(ctx, []string{"notes", notes}))
	assert.Contains(t, env.out.String(), "Added notes.md to Lecture Notes")
	assert.Contains(t, env.out.String(), "1 of 3 categories filled")

	err := a.Upload(ctx, []string{"syllabus", blob})
	assert.ErrorIs(t, err, workspace.ErrUnsupportedFile)
	assert.Contains(t, err.Error(), "data.bin")

	err = a.Upload(ctx, []string{"homework", notes})
	assert.Error(t, err)

	assert.Error(t, a.Remove(ctx, []string{"notes", "2"}))
	require.NoError(t, a.Remove(ctx, []string{"notes", "1"}))
	assert.Empty(t, a.workspace.Sources())
}

func TestApp_PasteAndGuide(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "cells and mitochondria\n\nribosomes\nmake proteins\n\n")
	env.login(t, "ada@example.org", "Ada")
	a := env.app

	require.NoError(t, a.Paste(ctx, []string{"syllabus"}))
	err := a.Guide(ctx)
	assert.ErrorContains(t, err, "at least 2 categories")

	require.NoError(t, a.Paste(ctx, []string{"notes"}))
	notes := a.workspace.ByCategory(models.CategoryNotes)
	require.Len(t, notes, 1)
	assert.Equal(t, "ribosomes\nmake proteins", notes[0].Content)

	require.NoError(t, a.Guide(ctx))
	out := env.out.String()
	assert.Contains(t, out, "== Cell Biology ==")
	assert.Contains(t, out, "Mitochondria  (focus score: 9)")
	assert.Contains(t, out, "Ribosomes  (focus score: 7)")
	assert.Contains(t, out, "0% complete")
}

func TestApp_GuideGatewayFailure(t *testing.T) {
	env := newTestEnv(t, "")
	env.login(t, "ada@example.org", "Ada")
	env.withSources(t)
	env.gw.err = gateway.ErrUnavailable

	err := env.app.Guide(context.Background())
	assert.ErrorIs(t, err, gateway.ErrGateway)
	assert.Nil(t, env.app.guide)
}

func TestApp_DoneTogglesProgress(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	env.login(t, "ada@example.org", "Ada")
	a := env.app

	assert.ErrorIs(t, a.Done(ctx, []string{"1"}), errNoGuide)

	a.guide = testGuide()
	require.NoError(t, a.Done(ctx, []string{"1"}))
	assert.Equal(t, 50, a.guide.Progress())
	assert.Contains(t, env.out.String(), "Mitochondria marked studied. Progress: 50%")

	require.NoError(t, a.Done(ctx, []string{"1"}))
	assert.Equal(t, 0, a.guide.Progress())

	assert.Error(t, a.Done(ctx, []string{"3"}))
	assert.Error(t, a.Done(ctx, []string{"x"}))
}

func TestApp_ExplainSelectsConcepts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	env.login(t, "ada@example.org", "Ada")
	a := env.app
	a.guide = testGuide()
	env.gw.explanations = []models.SimplifiedExplanation{
		{ConceptName: "Ribosomes", SimpleDefinition: "protein makers", Analogy: "a kitchen", RealWorldExample: "muscle growth"},
	}

	require.NoError(t, a.Explain(ctx, []string{"2"}))
	require.Len(t, env.gw.explained, 1)
	assert.Equal(t, "Ribosomes", env.gw.explained[0].Name)
	assert.Contains(t, env.out.String(), "Think of it like: a kitchen")

	require.NoError(t, a.Explain(ctx, nil))
	assert.Len(t, env.gw.explained, 2)
}

func TestApp_QuizAllCorrect(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "1\n2\n")
	env.login(t, "ada@example.org", "Ada")
	env.withSources(t)
	a := env.app
	a.guide = testGuide()

	require.NoError(t, a.Quiz(ctx, nil))
	assert.Equal(t, a.config.QuizQuestions, env.gw.quizOpts.Questions)
	assert.Empty(t, env.gw.quizOpts.SessionID)

	list := env.scores.Attempts(ctx, a.session.UserID())
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Score)
	assert.Equal(t, 100, list[0].Percentage)
	assert.Equal(t, "Ada", list[0].UserName)
	assert.Contains(t, env.out.String(), "Result: 2/2 (100%)")
	assert.Contains(t, env.out.String(), "The path is illuminated.")
}

func TestApp_QuizRetriesInvalidAnswers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "7\nabc\n1\n1\n")
	env.login(t, "ada@example.org", "Ada")
	env.withSources(t)
	a := env.app
	a.guide = testGuide()

	require.NoError(t, a.Quiz(ctx, []string{"2"}))
	assert.Equal(t, 2, env.gw.quizOpts.Questions)

	out := env.out.String()
	assert.Equal(t, 2, strings.Count(out, "Please answer with a number from 1 to 4."))
	assert.Contains(t, out, "Not quite. The answer was 2) Ribosome")

	list := env.scores.Attempts(ctx, a.session.UserID())
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Score)
	assert.Equal(t, 50, list[0].Percentage)
}

func TestApp_QuizQuitSavesPartialAttempt(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "1\nq\n")
	env.login(t, "ada@example.org", "Ada")
	env.withSources(t)
	a := env.app
	a.guide = testGuide()

	require.NoError(t, a.Quiz(ctx, nil))

	list := env.scores.Attempts(ctx, a.session.UserID())
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Score)
	assert.Equal(t, 2, list[0].Total)
}

func TestApp_QuizRequiresGuide(t *testing.T) {
	env := newTestEnv(t, "")
	env.login(t, "ada@example.org", "Ada")

	assert.ErrorIs(t, env.app.Quiz(context.Background(), nil), errNoGuide)
	assert.Error(t, env.app.Join(context.Background(), nil))
}

func TestApp_ShareAndJoinRankTogether(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, strings.Join([]string{
		"1", "1",
		"bob@example.org", "secret1",
		"1", "2",
	}, "\n")+"\n")
	_, err := env.identity.Signup(ctx, "bob@example.org", "secret1", "Bob")
	require.NoError(t, err)
	env.login(t, "ada@example.org", "Ada")
	env.withSources(t)
	a := env.app
	a.guide = testGuide()

	require.NoError(t, a.Share(ctx, nil))
	id := env.gw.quizOpts.SessionID
	require.NotEmpty(t, id)
	assert.Contains(t, env.out.String(), "Collaborative session: "+id)

	require.NoError(t, a.Login(ctx))
	require.Equal(t, "Bob", a.session.User.Name)
	require.Nil(t, a.guide)
	assert.Empty(t, a.workspace.Sources())

	require.NoError(t, a.Join(ctx, []string{id}))
	assert.Equal(t, 1, env.gw.quizCalls)
	require.NotNil(t, a.quiz)
	assert.Equal(t, id, a.quiz.SessionID)
	assert.Equal(t, testQuiz().Questions, a.quiz.Questions)

	ranked := env.scores.SessionRankings(ctx, id)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Bob", ranked[0].UserName)
	assert.Equal(t, "Ada", ranked[1].UserName)
	assert.Equal(t, ranked[0].QuizTitle, ranked[1].QuizTitle)

	env.out.Reset()
	require.NoError(t, a.Rankings(ctx, []string{id}))
	assert.Contains(t, env.out.String(), " 1. Bob")

	env.out.Reset()
	require.NoError(t, a.Rankings(ctx, []string{"nope"}))
	assert.Contains(t, env.out.String(), "No attempts recorded")
}

func TestApp_JoinUnknownSession(t *testing.T) {
	env := newTestEnv(t, "")
	env.login(t, "ada@example.org", "Ada")

	err := env.app.Join(context.Background(), []string{"nope"})
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
	assert.Zero(t, env.gw.quizCalls)
}

func TestApp_QuizTimeoutSavesAttempt(t *testing.T) {
	ctx := context.Background()
	pr, pw := io.Pipe()
	env := newTestEnvReader(t, pr)
	env.login(t, "ada@example.org", "Ada")
	env.withSources(t)
	a := env.app
	a.guide = testGuide()
	a.config.QuizSecondsPerQuestion = 1
	env.gw.quiz = &models.Quiz{Title: "Quick", Questions: testQuiz().Questions[:1]}
	uid := a.session.UserID()

	// answer only after the countdown has saved the attempt
	go func() {
		for i := 0; i < 50 && len(env.scores.Attempts(ctx, uid)) == 0; i++ {
			time.Sleep(100 * time.Millisecond)
		}
		_, _ = pw.Write([]byte("1\n"))
		_ = pw.Close()
	}()

	require.NoError(t, a.Quiz(ctx, nil))

	list := env.scores.Attempts(ctx, uid)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Score)
	assert.Equal(t, 1, list[0].Total)
	assert.GreaterOrEqual(t, list[0].TimeTaken, 1)
	out := env.out.String()
	assert.Contains(t, out, "Time is up!")
	assert.NotContains(t, out, "Correct!")
}

func TestApp_History(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	env.login(t, "ada@example.org", "Ada")
	a := env.app

	require.NoError(t, a.History(ctx))
	assert.Contains(t, env.out.String(), "No quiz attempts yet")

	for i, score := range []int{1, 2} {
		env.scores.SaveAttempt(ctx, a.session, models.QuizAttempt{
			QuizTitle: fmt.Sprintf("Trial %d", i+1), Score: score, Total: 2,
			Percentage: models.Percentage(score, 2),
		})
	}

	env.out.Reset()
	require.NoError(t, a.History(ctx))
	out := env.out.String()
	assert.Contains(t, out, "Attempts: 2   Average: 75%   Best: 100%   Mastery: foundation")
	assert.Less(t, strings.LastIndex(out, "Trial 2"), strings.LastIndex(out, "Trial 1"))
}

func TestApp_UsersAndFriends(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	_, err := env.identity.Signup(ctx, "bob@example.org", "secret1", "Bob")
	require.NoError(t, err)
	_, err = env.identity.Signup(ctx, "carol@example.org", "secret1", "Carol")
	require.NoError(t, err)
	env.login(t, "ada@example.org", "Ada")
	a := env.app

	require.NoError(t, a.Friends(ctx))
	assert.Contains(t, env.out.String(), "No friends yet")

	require.NoError(t, a.Users(ctx, []string{"bob"}))
	require.Len(t, a.lastUsers, 1)
	bobID := a.lastUsers[0].ID

	require.NoError(t, a.AddFriend(ctx, []string{"1"}))
	assert.Equal(t, []string{bobID}, a.session.User.Friends)

	env.out.Reset()
	require.NoError(t, a.Friends(ctx))
	assert.Contains(t, env.out.String(), "Bob <bob@example.org>")

	require.NoError(t, a.Users(ctx, nil))
	require.Len(t, a.lastUsers, 1)
	assert.Equal(t, "Carol", a.lastUsers[0].Name)

	assert.ErrorIs(t, a.AddFriend(ctx, []string{"no-such-id"}), services.ErrUserNotFound)
}

func TestApp_ChatFallbacks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "hello\nwhy?\nand?\n/end\nignored\n")
	env.login(t, "ada@example.org", "Ada")
	a := env.app

	assert.Error(t, a.Chat(ctx))

	env.withSources(t)
	env.gw.replies = []string{"Greetings, seeker."}
	env.gw.chatErrs = []error{nil, gateway.ErrUnavailable}

	require.NoError(t, a.Chat(ctx))
	out := env.out.String()
	assert.Contains(t, out, "Oracle: Greetings, seeker.")
	assert.Contains(t, out, "Oracle: "+lostReply)
	assert.Contains(t, out, "Oracle: "+silentReply)

	require.Len(t, a.chat, 2)
	assert.Equal(t, models.RoleModel, a.chat[1].Role)
	assert.Equal(t, "Greetings, seeker.", a.chat[1].Text)
	require.Len(t, env.gw.chatHistories, 3)
	assert.Len(t, env.gw.chatHistories[1], 2)
	for _, m := range env.gw.chatHistories[2] {
		assert.NotEqual(t, lostReply, m.Text)
		assert.NotEqual(t, silentReply, m.Text)
	}

	require.NoError(t, a.NewSession(ctx))
	assert.Nil(t, a.chat)
	assert.Empty(t, a.workspace.Sources())
}
