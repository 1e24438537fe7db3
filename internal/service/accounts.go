package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
	"github.com/existflow/clientpulse/internal/auth"
	"github.com/existflow/clientpulse/internal/logger"
	"github.com/existflow/clientpulse/internal/model"
	"github.com/existflow/clientpulse/internal/store"
	"github.com/google/uuid"
)

// UserStore is the persistence Accounts needs
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Session is an issued credential
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Accounts handles signup and login
type Accounts struct {
	users UserStore
	gate  *auth.Gate
	stub  bool
	now   func() time.Time
	newID func() string
}

// NewAccounts builds the account service. With stub set, signup and login
// accept any credentials and store nothing.
func NewAccounts(users UserStore, gate *auth.Gate, stub bool) *Accounts {
	return &Accounts{
		users: users,
		gate:  gate,
		stub:  stub,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Signup registers an email and password and signs the user in
func (a *Accounts) Signup(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if a.stub {
		return a.stubSession(email)
	}

	var problems []string
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		problems = append(problems, "email must be a valid address")
	}
	if len(password) < auth.MinPasswordLength {
		problems = append(problems, "password must be at least 8 characters")
	}
	if len(problems) > 0 {
		return nil, apperr.Validation(problems...)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperr.Upstream("could not hash password", err)
	}
	u := &model.User{
		ID:           a.newID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    model.Stamp(a.now()),
	}
	if err := a.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("email already registered")
		}
		err = apperr.Upstream("storage failure", err)
		logFailure("signup", err)
		return nil, err
	}

	logger.Info("User registered", logger.F("email", email))
	return a.issue(email)
}

// Login checks credentials and signs the user in
func (a *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if a.stub {
		return a.stubSession(email)
	}

	u, err := a.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err != nil {
		err = apperr.Upstream("storage failure", err)
		logFailure("login", err)
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		logger.Warn("Login rejected", logger.F("email", email))
		return nil, apperr.Unauthorized("invalid email or password")
	}

	logger.Info("User logged in", logger.F("email", email))
	return a.issue(email)
}

func (a *Accounts) stubSession(email string) (*Session, error) {
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	logger.Debug("Stub login", logger.F("email", email))
	return a.issue(email)
}

func (a *Accounts) issue(subject string) (*Session, error) {
	token, expiresAt, err := a.gate.Issue(subject)
	if err != nil {
		return nil, apperr.Upstream("could not issue credential", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
