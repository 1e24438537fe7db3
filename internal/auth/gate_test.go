package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	g, err := NewGate("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	g.SetClock(func() time.Time { return t0 })
	return g
}

func TestNewGateRequiresSecret(t *testing.T) {
	if _, err := NewGate("  ", time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("want ErrNoSecret, got=%v", err)
	}
	g, err := NewGate("s", 0)
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	if g.TTL() != DefaultTokenTTL {
		t.Fatalf("ttl: want=%v got=%v", DefaultTokenTTL, g.TTL())
	}
}

func TestIssueAndAuthorize(t *testing.T) {
	g := newTestGate(t)
	token, exp, err := g.Issue("ada@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(t0.Add(time.Hour)) {
		t.Fatalf("expiresAt: got=%v", exp)
	}

	for _, cred := range []string{token, "Bearer " + token, "bearer " + token} {
		sub, err := g.Authorize(cred)
		if err != nil {
			t.Fatalf("authorize %q: %v", cred[:10], err)
		}
		if sub != "ada@example.com" {
			t.Fatalf("subject: got=%q", sub)
		}
	}
}

func TestAuthorizeRejects(t *testing.T) {
	g := newTestGate(t)
	good, _, err := g.Issue("ada@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other, err := NewGate("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	other.SetClock(func() time.Time { return t0 })
	forged, _, _ := other.Issue("ada@example.com")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "ada@example.com",
		ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
	}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour)),
	}})
	anonymous, _ := noSubject.SignedString([]byte("test-secret"))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject: "ada@example.com",
	}})
	forever, _ := noExpiry.SignedString([]byte("test-secret"))

	tests := []struct {
		name string
		cred string
		msg  string
	}{
		{"missing", "", "missing credential"},
		{"bearer only", "Bearer ", "invalid credential"},
		{"garbage", "not.a.token", "invalid credential"},
		{"wrong secret", forged, "invalid credential"},
		{"alg none", unsigned, "invalid credential"},
		{"empty subject", anonymous, "invalid credential"},
		{"no expiry", forever, "invalid credential"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Authorize(tt.cred)
			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnauthorized {
				t.Fatalf("want unauthorized, got=%v", err)
			}
			if appErr.Message != tt.msg {
				t.Fatalf("message: want=%q got=%q", tt.msg, appErr.Message)
			}
		})
	}

	g.SetClock(func() time.Time { return t0.Add(2 * time.Hour) })
	if _, err := g.Authorize(good); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expired credential accepted: %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatalf("expected match")
	}
	if CheckPassword(hash, "battery staple") {
		t.Fatalf("expected mismatch")
	}
}
