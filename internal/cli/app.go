package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/examoracle/internal/config"
	"github.com/dmitrijs2005/examoracle/internal/filex"
	"github.com/dmitrijs2005/examoracle/internal/gateway"
	"github.com/dmitrijs2005/examoracle/internal/logging"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/repositories/attempts"
	"github.com/dmitrijs2005/examoracle/internal/repositories/quizzes"
	"github.com/dmitrijs2005/examoracle/internal/repositories/session"
	"github.com/dmitrijs2005/examoracle/internal/repositories/users"
	"github.com/dmitrijs2005/examoracle/internal/services"
	"github.com/dmitrijs2005/examoracle/internal/store"
	"github.com/dmitrijs2005/examoracle/internal/workspace"
)

// App is the CLI state for one process: the active session plus the
// in-memory study material of that session.
type App struct {
	config   *config.Config
	identity services.IdentityService
	scores   services.ScoreService
	gateway  gateway.Gateway
	store    store.Store
	log      logging.Logger

	session   *services.Session
	workspace *workspace.Workspace
	guide     *models.StudyGuide
	quiz      *models.Quiz
	chat      []models.ChatMessage
	lastUsers []models.User

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the record store and wires services and the model gateway.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := openStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error initializing store", "error", err)
		return nil, err
	}

	userRepo := users.NewStoreRepository(st)
	sessionRepo := session.NewStoreRepository(st)

	secret := []byte(c.SessionSecret)
	if len(secret) == 0 {
		secret, err = sessionRepo.Secret(ctx)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	identity := services.NewIdentityService(userRepo, sessionRepo, secret, c.SessionTTL, log.With("component", "identity"))
	scores := services.NewScoreService(attempts.NewStoreRepository(st), quizzes.NewStoreRepository(st), userRepo, c.HistoryRetention, log.With("component", "scores"))
	gw := gateway.New(gateway.Config{
		APIKey:  c.GeminiAPIKey,
		Model:   c.GeminiModel,
		BaseURL: c.GeminiBaseURL,
		Timeout: c.RequestTimeout,
	}, log.With("component", "gateway"))

	a := newApp(c, identity, scores, gw, log, os.Stdin, os.Stdout)
	a.store = st
	return a, nil
}

func newApp(c *config.Config, identity services.IdentityService, scores services.ScoreService, gw gateway.Gateway, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:    c,
		identity:  identity,
		scores:    scores,
		gateway:   gw,
		log:       log,
		workspace: workspace.New(),
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	if c.InMemory {
		return store.NewMemoryStore(), nil
	}
	if c.StoreDSN != ":memory:" && !strings.HasPrefix(c.StoreDSN, "file:") {
		if err := filex.EnsureParentDir(c.StoreDSN); err != nil {
			return nil, err
		}
	}
	return store.OpenSQLite(ctx, c.StoreDSN)
}

// Run restores a stored session, if any, and serves commands until EOF or exit.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	printlnFn("Welcome to Exam Oracle (type 'help' for commands)")

	sess, err := a.identity.CurrentSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if sess != nil {
		a.session = sess
		printlnFn(fmt.Sprintf("Welcome back, %s.", sess.User.Name))
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return "(" + a.session.User.Name + ")"
}

// resetStudy drops everything tied to the current study session.
func (a *App) resetStudy() {
	a.workspace.Reset()
	a.guide = nil
	a.quiz = nil
	a.chat = nil
}
