// Package auth implements account registration and session handling.
// Passwords are bcrypt-hashed at rest and sessions are opaque bearer
// tokens held in an in-memory cache with a TTL.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/newspulse/newspulse/internal/infra"
	"github.com/newspulse/newspulse/internal/store"
	"github.com/newspulse/newspulse/pkg/models"
)

// Validation and login errors. Login failures for unknown users and
// wrong passwords share one error so responses cannot be used to probe
// which usernames exist.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes, so longer passwords are
	// rejected instead of silently truncated.
	maxPasswordBytes = 72
	tokenBytes       = 32
)

// Manager registers accounts and issues session tokens.
type Manager struct {
	store    *store.Store
	sessions *infra.Cache
	ttl      time.Duration
}

// NewManager creates a Manager over the given store. Sessions expire
// after sessionTTL.
func NewManager(st *store.Store, sessionTTL time.Duration) *Manager {
	return &Manager{
		store:    st,
		sessions: infra.NewCache(sessionTTL),
		ttl:      sessionTTL,
	}
}

// Register creates a new account. The username is trimmed, both fields
// are required and the password must be 6-72 bytes.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return m.store.CreateUser(ctx, username, string(hash), strings.TrimSpace(email))
}

// Login checks the credentials and, when they match, issues a session
// token and records the login time. Unknown usernames and wrong
// passwords both return ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	u, err := m.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := m.store.TouchLastLogin(ctx, username); err != nil {
		return "", nil, err
	}
	now := time.Now().UTC()
	u.LastLogin = &now

	token, err := newToken()
	if err != nil {
		return "", nil, err
	}
	m.sessions.SetWithTTL(token, u.Username, m.ttl)
	return token, u, nil
}

// Verify resolves a session token to its username. Expired and unknown
// tokens report false.
func (m *Manager) Verify(token string) (string, bool) {
	v, ok := m.sessions.Get(token)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Logout invalidates a session token.
func (m *Manager) Logout(token string) {
	m.sessions.Invalidate(token)
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
