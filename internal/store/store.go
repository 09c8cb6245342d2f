// Package store persists user accounts and saved articles in a local
// SQLite database. The database file is created on first open and the
// schema is migrated in place.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors returned by store operations. The API layer maps
// these onto HTTP statuses.
var (
	ErrNotFound         = errors.New("not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrDuplicateArticle = errors.New("article already saved")
)

// Store wraps the SQLite handle holding accounts and bookmarks.
type Store struct {
	db *sqlx.DB
}

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL,
	last_login    TIMESTAMP
)`

const createArticlesSQL = `
CREATE TABLE IF NOT EXISTS saved_articles (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	username     TEXT NOT NULL,
	title        TEXT NOT NULL,
	link         TEXT NOT NULL,
	source       TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	image_url    TEXT NOT NULL DEFAULT '',
	published_at TEXT NOT NULL DEFAULT '',
	sentiment    TEXT NOT NULL DEFAULT 'neutral',
	score        REAL NOT NULL DEFAULT 0,
	saved_at     TIMESTAMP NOT NULL,
	UNIQUE (username, link)
)`

// Open opens the database at path, creating the file and its parent
// directory when missing, and runs the schema migration.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	// busy_timeout keeps concurrent writers waiting instead of erroring
	// and WAL lets readers run alongside them. _time_format=sqlite makes
	// time.Time values round-trip through TIMESTAMP columns.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite", path)
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{createUsersSQL, createArticlesSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
