package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/clientpulse/internal/model"
)

// CreateUser inserts a user. A taken email returns ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, micros(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail looks a user up by its sign-in email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var (
		u       model.User
		created int64
	)
	err := s.queryRow(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = time.UnixMicro(created).UTC()
	return &u, nil
}
