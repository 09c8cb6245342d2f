package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// ── Article Tests ──

func TestArticleJSONRoundtrip(t *testing.T) {
	published := time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)
	a := Article{
		Title:       "Tesla posts record quarterly deliveries",
		Description: "The EV maker beat analyst estimates for the third straight quarter.",
		URL:         "https://example.com/tesla-record",
		ImageURL:    "https://example.com/tesla.jpg",
		Source:      "Example Wire",
		Category:    "business",
		Language:    "en",
		PublishedAt: published,
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("json.Marshal(Article) error: %v", err)
	}
	var decoded Article
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(Article) error: %v", err)
	}
	if decoded.Title != a.Title {
		t.Errorf("Title: got %q, want %q", decoded.Title, a.Title)
	}
	if decoded.Source != a.Source {
		t.Errorf("Source: got %q, want %q", decoded.Source, a.Source)
	}
	if !decoded.PublishedAt.Equal(published) {
		t.Errorf("PublishedAt: got %v, want %v", decoded.PublishedAt, published)
	}
}

func TestArticleText(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    string
	}{
		{
			name:    "description preferred over title",
			article: Article{Title: "Markets rally", Description: "Stocks surge on strong earnings"},
			want:    "Stocks surge on strong earnings",
		},
		{
			name:    "title only",
			article: Article{Title: "Markets rally"},
			want:    "Markets rally",
		},
		{
			name:    "description only",
			article: Article{Description: "Stocks surge"},
			want:    "Stocks surge",
		},
		{
			name:    "whitespace description ignored",
			article: Article{Title: "Markets rally", Description: "   "},
			want:    "Markets rally",
		},
		{
			name:    "empty",
			article: Article{},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.article.Text(); got != tt.want {
				t.Errorf("Text(): got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoredArticleEmbedsArticleJSON(t *testing.T) {
	sa := ScoredArticle{
		Article: Article{
			Title:  "Fraud lawsuit hits major bank",
			URL:    "https://example.com/lawsuit",
			Source: "Example Wire",
		},
		Sentiment:  SentimentNegative,
		Score:      -0.2,
		Confidence: 0.2,
	}
	data, err := json.Marshal(sa)
	if err != nil {
		t.Fatalf("json.Marshal(ScoredArticle) error: %v", err)
	}
	// Embedding should flatten article fields alongside the sentiment.
	s := string(data)
	for _, key := range []string{`"title"`, `"url"`, `"sentiment"`, `"score"`} {
		if !strings.Contains(s, key) {
			t.Errorf("marshalled ScoredArticle missing %s: %s", key, s)
		}
	}
	var decoded ScoredArticle
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(ScoredArticle) error: %v", err)
	}
	if decoded.Title != sa.Title {
		t.Errorf("Title: got %q, want %q", decoded.Title, sa.Title)
	}
	if decoded.Sentiment != SentimentNegative {
		t.Errorf("Sentiment: got %q, want %q", decoded.Sentiment, SentimentNegative)
	}
}

// ── Sentiment Tests ──

func TestSentimentLabelConstants(t *testing.T) {
	labels := map[SentimentLabel]string{
		SentimentPositive: "positive",
		SentimentNeutral:  "neutral",
		SentimentNegative: "negative",
	}
	for l, expected := range labels {
		if string(l) != expected {
			t.Errorf("SentimentLabel %v: got %q, want %q", l, string(l), expected)
		}
	}
}

func TestBadgeColors(t *testing.T) {
	tests := []struct {
		label SentimentLabel
		want  string
	}{
		{SentimentPositive, "#10b981"},
		{SentimentNeutral, "#6b7280"},
		{SentimentNegative, "#ef4444"},
		{SentimentLabel("unknown"), "#6b7280"},
	}
	for _, tt := range tests {
		if got := tt.label.BadgeColor(); got != tt.want {
			t.Errorf("BadgeColor(%q): got %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestSentimentSummaryJSON(t *testing.T) {
	sum := SentimentSummary{
		Positive:     6,
		Neutral:      3,
		Negative:     1,
		Total:        10,
		AverageScore: 0.21,
		Overall:      SentimentPositive,
	}
	if sum.Positive+sum.Neutral+sum.Negative != sum.Total {
		t.Errorf("counts should add up to Total: %d+%d+%d != %d",
			sum.Positive, sum.Neutral, sum.Negative, sum.Total)
	}
	data, err := json.Marshal(sum)
	if err != nil {
		t.Fatalf("json.Marshal(SentimentSummary) error: %v", err)
	}
	var decoded SentimentSummary
	json.Unmarshal(data, &decoded)
	if decoded.Overall != SentimentPositive {
		t.Errorf("Overall: got %q, want %q", decoded.Overall, SentimentPositive)
	}
}

// ── User Tests ──

func TestUserPasswordHashNeverMarshalled(t *testing.T) {
	u := User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now(),
	}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("json.Marshal(User) error: %v", err)
	}
	if strings.Contains(string(data), "password") || strings.Contains(string(data), "$2a$") {
		t.Errorf("password hash leaked into JSON: %s", data)
	}
	if !strings.Contains(string(data), `"username":"alice"`) {
		t.Errorf("username missing from JSON: %s", data)
	}
}

func TestUserLastLoginOmittedWhenNil(t *testing.T) {
	u := User{ID: 2, Username: "bob", CreatedAt: time.Now()}
	data, _ := json.Marshal(u)
	if strings.Contains(string(data), "last_login") {
		t.Errorf("nil LastLogin should be omitted: %s", data)
	}
	now := time.Now()
	u.LastLogin = &now
	data, _ = json.Marshal(u)
	if !strings.Contains(string(data), "last_login") {
		t.Errorf("set LastLogin should be present: %s", data)
	}
}

// ── Saved Article Tests ──

func TestSavedArticleJSONRoundtrip(t *testing.T) {
	saved := SavedArticle{
		ID:          7,
		Username:    "alice",
		Title:       "SpaceX completes crewed launch",
		Link:        "https://example.com/spacex",
		Source:      "Example Wire",
		Category:    "science",
		PublishedAt: "2026-02-11T09:30:00Z",
		Sentiment:   "positive",
		Score:       0.6,
		SavedAt:     time.Date(2026, 2, 12, 8, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(saved)
	if err != nil {
		t.Fatalf("json.Marshal(SavedArticle) error: %v", err)
	}
	var decoded SavedArticle
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(SavedArticle) error: %v", err)
	}
	if decoded.Link != saved.Link {
		t.Errorf("Link: got %q, want %q", decoded.Link, saved.Link)
	}
	if decoded.Score != saved.Score {
		t.Errorf("Score: got %f, want %f", decoded.Score, saved.Score)
	}
}
