package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/examoracle/internal/auth"
	"github.com/dmitrijs2005/examoracle/internal/common"
	"github.com/dmitrijs2005/examoracle/internal/cryptox"
	"github.com/dmitrijs2005/examoracle/internal/logging"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/dmitrijs2005/examoracle/internal/repositories/session"
	"github.com/dmitrijs2005/examoracle/internal/repositories/users"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password Signup accepts.
const MinPasswordLength = 6

// IdentityService manages accounts, the persisted session and friend lists.
//
// Contract:
//   - Signup/Login establish the active session and return it.
//   - Logout clears it; calling it twice is fine.
//   - CurrentSession restores the session after a restart, or returns nil.
//   - Read methods never expose password hashes.
type IdentityService interface {
	Signup(ctx context.Context, email, password, name string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*Session, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	AddFriend(ctx context.Context, sess *Session, friendID string) (*Session, error)
	Friends(ctx context.Context, sess *Session) ([]models.User, error)
	AllUsers(ctx context.Context) ([]models.User, error)
	SearchUsers(ctx context.Context, sess *Session, query string) ([]models.User, error)
}

type identityService struct {
	users    users.Repository
	sessions session.Repository
	secret   []byte
	ttl      time.Duration
	log      logging.Logger
}

// NewIdentityService wires the service. secret signs session tokens, ttl
// bounds how long a stored session stays valid.
func NewIdentityService(u users.Repository, s session.Repository, secret []byte, ttl time.Duration, log logging.Logger) IdentityService {
	return &identityService{users: u, sessions: s, secret: secret, ttl: ttl, log: log}
}

func (s *identityService) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: email and name are required", ErrInvalidInput)
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	c := models.Credential{
		User:         models.User{ID: uuid.NewString(), Email: email, Name: name},
		PasswordHash: cryptox.HashPassword(password),
	}
	if err := s.users.Create(ctx, c); err != nil {
		if errors.Is(err, users.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info(ctx, "user signed up", "user_id", c.ID)
	return s.establish(ctx, c.Public())
}

func (s *identityService) Login(ctx context.Context, email, password string) (*Session, error) {
	c, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := cryptox.VerifyPassword(c.PasswordHash, password)
	if err != nil {
		s.log.Warn(ctx, "stored password hash unreadable", "user_id", c.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	s.log.Info(ctx, "user logged in", "user_id", c.ID)
	return s.establish(ctx, c.Public())
}

func (s *identityService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// establish signs a token for u and persists it as the active session.
func (s *identityService) establish(ctx context.Context, u models.User) (*Session, error) {
	token, err := auth.GenerateToken(u, s.secret, s.ttl)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, token); err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}

func (s *identityService) CurrentSession(ctx context.Context) (*Session, error) {
	token, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	u, err := auth.ParseToken(token, s.secret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrInvalidToken) {
			s.log.Debug(ctx, "stored session rejected", "error", err)
			return nil, nil
		}
		return nil, err
	}
	return &Session{User: *u, Token: token}, nil
}

func (s *identityService) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := s.CurrentSession(ctx)
	if err != nil || sess == nil {
		return nil, err
	}
	return &sess.User, nil
}

func (s *identityService) AddFriend(ctx context.Context, sess *Session, friendID string) (*Session, error) {
	if sess == nil {
		return nil, nil
	}
	if friendID == "" || friendID == sess.User.ID {
		return nil, fmt.Errorf("%w: cannot befriend yourself", ErrInvalidInput)
	}

	friend, err := s.users.FindByID(ctx, friendID)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, friendID)
	}

	updated, err := s.users.Update(ctx, sess.User.ID, func(c *models.Credential) error {
		if !c.HasFriend(friendID) {
			c.Friends = append(c.Friends, friendID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, sess.User.ID)
		}
		return nil, err
	}

	s.log.Info(ctx, "friend added", "user_id", sess.User.ID, "friend_id", friendID)
	return s.establish(ctx, updated.Public())
}

func (s *identityService) Friends(ctx context.Context, sess *Session) ([]models.User, error) {
	if sess == nil {
		return nil, nil
	}
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Credential, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	me, ok := byID[sess.User.ID]
	if !ok {
		return nil, nil
	}

	out := make([]models.User, 0, len(me.Friends))
	for _, id := range me.Friends {
		if c, ok := byID[id]; ok {
			out = append(out, c.Public())
		}
	}
	return out, nil
}

func (s *identityService) AllUsers(ctx context.Context) ([]models.User, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(all))
	for _, c := range all {
		out = append(out, c.Public())
	}
	return out, nil
}

// SearchUsers matches name or email by case-insensitive substring, skipping
// the caller and people already on the caller's friend list.
func (s *identityService) SearchUsers(ctx context.Context, sess *Session, query string) ([]models.User, error) {
	if sess == nil {
		return nil, nil
	}
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var me models.User
	for _, c := range all {
		if c.ID == sess.User.ID {
			me = c.User
			break
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.User{}
	for _, c := range all {
		if c.ID == sess.User.ID || me.HasFriend(c.ID) {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c.Public())
		}
	}
	return out, nil
}
