package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/newspulse/newspulse/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "newspulse.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSaved(username, link string) *models.SavedArticle {
	return &models.SavedArticle{
		Username:    username,
		Title:       "Tesla beats delivery estimates",
		Link:        link,
		Source:      "Reuters",
		Category:    "business",
		PublishedAt: "2025-06-15T10:00:00Z",
		Sentiment:   "positive",
		Score:       0.6,
	}
}

// --- Open ---

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "news.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := s1.CreateUser(context.Background(), "alice", "hash", ""); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	s1.Close()

	// Reopening migrates against the existing schema and keeps the data.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()
	if _, err := s2.UserByUsername(context.Background(), "alice"); err != nil {
		t.Errorf("user lost across reopen: %v", err)
	}
}

// --- Users ---

func TestCreateAndLookupUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "alice", "bcrypt-hash", "alice@example.com")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID <= 0 {
		t.Errorf("expected positive id, got %d", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}

	u, err := s.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("id = %d, want %d", u.ID, created.ID)
	}
	if u.Username != "alice" || u.Email != "alice@example.com" {
		t.Errorf("unexpected user fields: %+v", u)
	}
	if u.PasswordHash != "bcrypt-hash" {
		t.Errorf("password hash = %q, want %q", u.PasswordHash, "bcrypt-hash")
	}
	if u.LastLogin != nil {
		t.Errorf("expected nil LastLogin for fresh account, got %v", u.LastLogin)
	}
	if !u.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", u.CreatedAt, created.CreatedAt)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "alice", "hash1", ""); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}
	_, err := s.CreateUser(ctx, "alice", "hash2", "other@example.com")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserByUsernameNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTouchLastLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "alice", "hash", ""); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.TouchLastLogin(ctx, "alice"); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}

	u, err := s.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	if u.LastLogin == nil {
		t.Fatal("expected LastLogin to be set")
	}
	if time.Since(*u.LastLogin) > time.Minute {
		t.Errorf("LastLogin too old: %v", u.LastLogin)
	}
}

// --- Saved articles ---

func TestSaveArticleDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &models.SavedArticle{
		Username: "alice",
		Title:    "Quiet day on the markets",
		Link:     "https://example.com/quiet",
	}
	if err := s.SaveArticle(ctx, a); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}
	if a.ID <= 0 {
		t.Errorf("expected positive id, got %d", a.ID)
	}
	if a.SavedAt.IsZero() {
		t.Error("expected SavedAt to be stamped")
	}

	saved, err := s.ListSaved(ctx, "alice")
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved article, got %d", len(saved))
	}
	got := saved[0]
	if got.Source != "Unknown" {
		t.Errorf("source = %q, want %q", got.Source, "Unknown")
	}
	if got.Category != "General" {
		t.Errorf("category = %q, want %q", got.Category, "General")
	}
	if got.Sentiment != "neutral" {
		t.Errorf("sentiment = %q, want %q", got.Sentiment, "neutral")
	}
	if got.Score != 0 {
		t.Errorf("score = %v, want 0", got.Score)
	}
}

func TestSaveArticleRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := sampleSaved("alice", "https://example.com/tesla")
	if err := s.SaveArticle(ctx, a); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	saved, err := s.ListSaved(ctx, "alice")
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	got := saved[0]
	if got.Title != a.Title || got.Link != a.Link || got.Source != "Reuters" {
		t.Errorf("unexpected fields: %+v", got)
	}
	if got.Category != "business" || got.Sentiment != "positive" || got.Score != 0.6 {
		t.Errorf("unexpected sentiment fields: %+v", got)
	}
	if got.PublishedAt != "2025-06-15T10:00:00Z" {
		t.Errorf("published_at = %q", got.PublishedAt)
	}
	if !got.SavedAt.Equal(a.SavedAt) {
		t.Errorf("SavedAt = %v, want %v", got.SavedAt, a.SavedAt)
	}
}

func TestSaveArticleDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveArticle(ctx, sampleSaved("alice", "https://example.com/a")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	err := s.SaveArticle(ctx, sampleSaved("alice", "https://example.com/a"))
	if !errors.Is(err, ErrDuplicateArticle) {
		t.Errorf("expected ErrDuplicateArticle, got %v", err)
	}

	// The guard is per user: another account may save the same link.
	if err := s.SaveArticle(ctx, sampleSaved("bob", "https://example.com/a")); err != nil {
		t.Errorf("save for different user: %v", err)
	}
}

func TestListSavedNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, link := range []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"} {
		if err := s.SaveArticle(ctx, sampleSaved("alice", link)); err != nil {
			t.Fatalf("SaveArticle %s: %v", link, err)
		}
	}

	saved, err := s.ListSaved(ctx, "alice")
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(saved))
	}
	if saved[0].Link != "https://example.com/3" || saved[2].Link != "https://example.com/1" {
		t.Errorf("wrong order: %q, %q, %q", saved[0].Link, saved[1].Link, saved[2].Link)
	}
}

func TestListSavedEmpty(t *testing.T) {
	s := newTestStore(t)
	saved, err := s.ListSaved(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if saved == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(saved) != 0 {
		t.Errorf("expected no articles, got %d", len(saved))
	}
}

func TestDeleteSaved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := sampleSaved("alice", "https://example.com/del")
	if err := s.SaveArticle(ctx, a); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	// Another user must not be able to delete it.
	if err := s.DeleteSaved(ctx, "bob", a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user delete: expected ErrNotFound, got %v", err)
	}

	if err := s.DeleteSaved(ctx, "alice", a.ID); err != nil {
		t.Fatalf("DeleteSaved: %v", err)
	}
	if err := s.DeleteSaved(ctx, "alice", a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}

	saved, err := s.ListSaved(ctx, "alice")
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if len(saved) != 0 {
		t.Errorf("expected no articles after delete, got %d", len(saved))
	}
}

func TestCountSaved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountSaved(ctx, "alice")
	if err != nil {
		t.Fatalf("CountSaved: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0, got %d", n)
	}

	for _, link := range []string{"https://example.com/1", "https://example.com/2"} {
		if err := s.SaveArticle(ctx, sampleSaved("alice", link)); err != nil {
			t.Fatalf("SaveArticle: %v", err)
		}
	}
	if err := s.SaveArticle(ctx, sampleSaved("bob", "https://example.com/1")); err != nil {
		t.Fatalf("SaveArticle: %v", err)
	}

	n, err = s.CountSaved(ctx, "alice")
	if err != nil {
		t.Fatalf("CountSaved: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st, err := s.Stats(ctx, "alice")
	if err != nil {
		t.Fatalf("Stats on empty store: %v", err)
	}
	if st.Total != 0 || st.UniqueSources != 0 || st.LastSavedAt != nil {
		t.Errorf("expected zero stats, got %+v", st)
	}

	articles := []*models.SavedArticle{
		sampleSaved("alice", "https://example.com/1"),
		sampleSaved("alice", "https://example.com/2"),
		sampleSaved("alice", "https://example.com/3"),
	}
	articles[2].Source = "BBC News"
	for _, a := range articles {
		if err := s.SaveArticle(ctx, a); err != nil {
			t.Fatalf("SaveArticle: %v", err)
		}
	}

	st, err = s.Stats(ctx, "alice")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 3 {
		t.Errorf("total = %d, want 3", st.Total)
	}
	if st.UniqueSources != 2 {
		t.Errorf("unique sources = %d, want 2", st.UniqueSources)
	}
	if st.LastSavedAt == nil {
		t.Fatal("expected LastSavedAt to be set")
	}
	if time.Since(*st.LastSavedAt) > time.Minute {
		t.Errorf("LastSavedAt too old: %v", st.LastSavedAt)
	}
}
