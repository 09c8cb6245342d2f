package gnews

import (
	"strings"
	"time"

	"github.com/newspulse/newspulse/pkg/models"
)

// Wire types for the GNews v4 API.

type apiResponse struct {
	TotalArticles int          `json:"totalArticles"`
	Articles      []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Image       string    `json:"image"`
	PublishedAt string    `json:"publishedAt"`
	Source      apiSource `json:"source"`
}

type apiSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// toArticles maps API articles to the standard model. Entries without a
// title are dropped; lang and category record what was requested.
func toArticles(in []apiArticle, lang, category string) []models.Article {
	out := make([]models.Article, 0, len(in))
	for _, a := range in {
		if strings.TrimSpace(a.Title) == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		out = append(out, models.Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			ImageURL:    a.Image,
			Source:      a.Source.Name,
			Category:    category,
			Language:    lang,
			PublishedAt: published,
		})
	}
	return out
}
