package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/newspulse/newspulse/pkg/models"
)

const insertUserSQL = `
INSERT INTO users (username, password_hash, email, created_at)
VALUES (?, ?, ?, ?)`

const selectUserSQL = `
SELECT id, username, password_hash, email, created_at, last_login
FROM users
WHERE username = ?`

const touchLastLoginSQL = `
UPDATE users SET last_login = ? WHERE username = ?`

// CreateUser inserts a new account with an already-hashed password and
// returns it. A taken username yields ErrUsernameTaken.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, email string) (*models.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, insertUserSQL, username, passwordHash, email, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// UserByUsername looks up an account. Misses yield ErrNotFound.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, selectUserSQL, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}
	return &u, nil
}

// TouchLastLogin records a successful login time for the account.
func (s *Store) TouchLastLogin(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx, touchLastLoginSQL, time.Now().UTC(), username); err != nil {
		return fmt.Errorf("touch last_login for %q: %w", username, err)
	}
	return nil
}
