package models

import (
	"strings"
	"time"
)

// Article is a single news story as returned by a news provider.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url,omitempty"`
	Source      string    `json:"source"`
	Category    string    `json:"category,omitempty"`
	Language    string    `json:"language,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Text returns the text scored in shallow mode: the description when
// present, otherwise the headline.
func (a Article) Text() string {
	if desc := strings.TrimSpace(a.Description); desc != "" {
		return desc
	}
	return strings.TrimSpace(a.Title)
}

// ScoredArticle is an Article with its sentiment attached.
type ScoredArticle struct {
	Article
	Sentiment  SentimentLabel `json:"sentiment"`
	Score      float64        `json:"score"`
	Confidence float64        `json:"confidence"`
}

// SavedArticle is an article a user bookmarked, persisted with the
// sentiment it carried at save time.
type SavedArticle struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Title       string    `json:"title" db:"title"`
	Link        string    `json:"link" db:"link"`
	Source      string    `json:"source,omitempty" db:"source"`
	Category    string    `json:"category,omitempty" db:"category"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	PublishedAt string    `json:"published_at,omitempty" db:"published_at"`
	Sentiment   string    `json:"sentiment" db:"sentiment"`
	Score       float64   `json:"score" db:"score"`
	SavedAt     time.Time `json:"saved_at" db:"saved_at"`
}

// SavedStats summarizes a user's saved articles.
type SavedStats struct {
	Total         int        `json:"total"`
	UniqueSources int        `json:"unique_sources"`
	LastSavedAt   *time.Time `json:"last_saved_at,omitempty"`
}
