package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long an issued credential stays valid
const DefaultTokenTTL = 24 * time.Hour

// MinPasswordLength is enforced on signup
const MinPasswordLength = 8

// ErrNoSecret is returned when a gate is built without a signing secret
var ErrNoSecret = errors.New("auth: signing secret is required")

// Claims carried by an issued credential. Subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// Gate issues and verifies signed credentials
type Gate struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewGate builds a gate. There is no fallback secret.
func NewGate(secret string, ttl time.Duration) (*Gate, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Gate{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// SetClock replaces the clock used for issuing and expiry checks
func (g *Gate) SetClock(now func() time.Time) {
	g.now = now
}

// TTL returns the credential lifetime
func (g *Gate) TTL() time.Duration {
	return g.ttl
}

// Issue signs a credential for subject
func (g *Gate) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("auth: empty subject")
	}
	now := g.now()
	expiresAt := now.Add(g.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Authorize resolves a credential to its subject. The credential is the raw
// Authorization header value; a leading "Bearer " is stripped.
func (g *Gate) Authorize(credential string) (string, error) {
	token := strings.TrimSpace(credential)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", apperr.Unauthorized("missing credential")
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return "", invalid(err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", invalid(nil)
	}
	return claims.Subject, nil
}

func invalid(cause error) error {
	e := apperr.Unauthorized("invalid credential")
	e.Cause = cause
	return e
}

// HashPassword returns a bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
