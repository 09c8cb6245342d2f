package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newspulse/newspulse/pkg/models"
)

const insertArticleSQL = `
INSERT INTO saved_articles
	(username, title, link, source, category, image_url, published_at, sentiment, score, saved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const listArticlesSQL = `
SELECT id, username, title, link, source, category, image_url, published_at, sentiment, score, saved_at
FROM saved_articles
WHERE username = ?
ORDER BY id DESC`

const deleteArticleSQL = `
DELETE FROM saved_articles WHERE username = ? AND id = ?`

const countArticlesSQL = `
SELECT COUNT(*) FROM saved_articles WHERE username = ?`

const statsArticlesSQL = `
SELECT COUNT(*), COUNT(DISTINCT source) FROM saved_articles WHERE username = ?`

const lastSavedSQL = `
SELECT saved_at FROM saved_articles WHERE username = ? ORDER BY saved_at DESC LIMIT 1`

// SaveArticle bookmarks an article for a.Username, filling defaults for
// missing fields, and stamps a.ID and a.SavedAt. Saving the same link
// twice for one user yields ErrDuplicateArticle.
func (s *Store) SaveArticle(ctx context.Context, a *models.SavedArticle) error {
	if strings.TrimSpace(a.Source) == "" {
		a.Source = "Unknown"
	}
	if strings.TrimSpace(a.Category) == "" {
		a.Category = "General"
	}
	if strings.TrimSpace(a.Sentiment) == "" {
		a.Sentiment = "neutral"
	}
	if a.SavedAt.IsZero() {
		a.SavedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, insertArticleSQL,
		a.Username, a.Title, a.Link, a.Source, a.Category,
		a.ImageURL, a.PublishedAt, a.Sentiment, a.Score, a.SavedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateArticle
		}
		return fmt.Errorf("save article for %q: %w", a.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save article for %q: %w", a.Username, err)
	}
	a.ID = id
	return nil
}

// ListSaved returns the user's bookmarks, newest first.
func (s *Store) ListSaved(ctx context.Context, username string) ([]models.SavedArticle, error) {
	// Empty slice rather than nil so handlers serialize [].
	articles := []models.SavedArticle{}
	if err := s.db.SelectContext(ctx, &articles, listArticlesSQL, username); err != nil {
		return nil, fmt.Errorf("list saved articles for %q: %w", username, err)
	}
	return articles, nil
}

// DeleteSaved removes one bookmark by id, scoped to its owner. An
// unknown id, or another user's id, yields ErrNotFound.
func (s *Store) DeleteSaved(ctx context.Context, username string, id int64) error {
	res, err := s.db.ExecContext(ctx, deleteArticleSQL, username, id)
	if err != nil {
		return fmt.Errorf("delete saved article %d for %q: %w", id, username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved article %d for %q: %w", id, username, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountSaved returns the number of articles the user has bookmarked.
func (s *Store) CountSaved(ctx context.Context, username string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, countArticlesSQL, username); err != nil {
		return 0, fmt.Errorf("count saved articles for %q: %w", username, err)
	}
	return n, nil
}

// Stats summarizes the user's bookmarks: how many, from how many
// distinct sources, and when the most recent one was saved.
func (s *Store) Stats(ctx context.Context, username string) (*models.SavedStats, error) {
	var st models.SavedStats
	if err := s.db.QueryRowContext(ctx, statsArticlesSQL, username).Scan(&st.Total, &st.UniqueSources); err != nil {
		return nil, fmt.Errorf("stats for %q: %w", username, err)
	}
	if st.Total == 0 {
		return &st, nil
	}
	var last time.Time
	if err := s.db.QueryRowContext(ctx, lastSavedSQL, username).Scan(&last); err != nil {
		return nil, fmt.Errorf("stats for %q: %w", username, err)
	}
	st.LastSavedAt = &last
	return &st, nil
}
