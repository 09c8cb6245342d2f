// Package rss implements a key-free article provider backed by RSS feeds.
// Google News feeds are used by default, so the service can search and
// serve headlines without any credentials. In the registry it doubles as
// the fallback when the keyed provider is down or unconfigured.
package rss

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/newspulse/newspulse/internal/provider"
	"github.com/newspulse/newspulse/pkg/models"
	"github.com/newspulse/newspulse/pkg/utils"
)

const (
	providerName = "rss"

	defaultSearchBase = "https://news.google.com/rss/search"

	defaultMax  = 10
	maxArticles = 20
)

// Provider implements provider.Provider over RSS feeds.
type Provider struct {
	provider.BaseProvider
	parser     *gofeed.Parser
	feeds      map[string]string // category → feed URL
	searchBase string
}

// New creates an RSS provider with the given category feed map. Category
// names are matched case-insensitively; the "general" entry serves headline
// requests that carry no category, and Ping.
func New(feeds map[string]string) *Provider {
	p := &Provider{
		parser:     gofeed.NewParser(),
		feeds:      make(map[string]string, len(feeds)),
		searchBase: defaultSearchBase,
	}
	for cat, u := range feeds {
		p.feeds[strings.ToLower(strings.TrimSpace(cat))] = u
	}
	p.BaseProvider = provider.NewBaseProvider(
		providerName,
		"RSS feeds - key-free search and headlines via Google News",
		"https://news.google.com",
		nil,
	)

	p.RegisterFetcher(newSearchFetcher(p))
	p.RegisterFetcher(newHeadlinesFetcher(p))

	return p
}

// SetSearchBase points keyword search at a different feed root. Tests use
// this to run the search fetcher against a local httptest server.
func (p *Provider) SetSearchBase(u string) {
	p.searchBase = strings.TrimSuffix(u, "/")
}

// Ping parses the general headlines feed to verify reachability.
func (p *Provider) Ping(ctx context.Context) error {
	_, feedURL, ok := p.feedFor("")
	if !ok {
		return fmt.Errorf("rss ping: no general feed configured")
	}
	if _, err := p.parser.ParseURLWithContext(feedURL, ctx); err != nil {
		return fmt.Errorf("rss ping: %w", err)
	}
	return nil
}

// feedFor resolves a category to its configured feed. An empty category
// falls back to "general". The resolved name is returned so articles can
// carry it.
func (p *Provider) feedFor(category string) (string, string, bool) {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		cat = "general"
	}
	u, ok := p.feeds[cat]
	return cat, u, ok
}

// searchURL builds the Google News keyword search feed URL.
func (p *Provider) searchURL(query, lang string) string {
	hl := "en-US"
	if lang != "" {
		hl = lang
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("hl", hl)
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	return p.searchBase + "?" + q.Encode()
}

// --- Shared helpers ---

// toArticles maps feed items to the standard model. Entries without a
// title are dropped; the source is the feed's own title.
func toArticles(feed *gofeed.Feed, category string) []models.Article {
	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		a := models.Article{
			Title:       item.Title,
			Description: cleanHTML(item.Description),
			URL:         item.Link,
			ImageURL:    itemImage(item),
			Source:      feed.Title,
			Category:    category,
			Language:    feed.Language,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}
	return articles
}

// itemImage pulls an image URL from the item's image or enclosures.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// filterWindow drops articles published before the window start. RSS has
// no server-side from param, so the window is applied locally. Items with
// no parseable date are dropped when a window is requested.
func filterWindow(articles []models.Article, window string, now time.Time) []models.Article {
	start, ok := utils.WindowStart(window, now)
	if !ok {
		return articles
	}
	kept := articles[:0]
	for _, a := range articles {
		if !a.PublishedAt.IsZero() && !a.PublishedAt.Before(start) {
			kept = append(kept, a)
		}
	}
	return kept
}

// sortByDate sorts articles newest first.
func sortByDate(articles []models.Article) {
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

// clampMax parses the max param and keeps it within bounds.
func clampMax(params provider.QueryParams) int {
	n := defaultMax
	if raw := params[provider.ParamMax]; raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			n = v
		}
	}
	if n < 1 {
		n = 1
	}
	if n > maxArticles {
		n = maxArticles
	}
	return n
}

// newResult creates a FetchResult.
func newResult(data any) *provider.FetchResult {
	return &provider.FetchResult{
		Data:      data,
		FetchedAt: time.Now(),
	}
}

// newCachedResult creates a cached FetchResult.
func newCachedResult(data any) *provider.FetchResult {
	return &provider.FetchResult{
		Data:      data,
		FetchedAt: time.Now(),
		Cached:    true,
	}
}
