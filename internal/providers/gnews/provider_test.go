package gnews

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newspulse/newspulse/internal/infra"
	"github.com/newspulse/newspulse/internal/provider"
	"github.com/newspulse/newspulse/pkg/models"
)

// newTestProvider returns an initialized provider pointed at a local server.
func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := New()
	if err := p.Init(map[string]string{"api_key": "test-key"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	p.SetBaseURL(srv.URL)
	return p
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func sampleResponse() apiResponse {
	return apiResponse{
		TotalArticles: 3,
		Articles: []apiArticle{
			{
				Title:       "Tesla reports record quarter",
				Description: "Strong growth in deliveries",
				URL:         "https://example.com/tesla",
				Image:       "https://example.com/tesla.jpg",
				PublishedAt: "2025-06-15T10:00:00Z",
				Source:      apiSource{Name: "Example Wire", URL: "https://example.com"},
			},
			{
				// No title, should be dropped.
				Description: "orphan description",
				URL:         "https://example.com/untitled",
			},
			{
				Title:       "Markets open flat",
				URL:         "https://example.com/markets",
				PublishedAt: "2025-06-15T09:30:00Z",
				Source:      apiSource{Name: "Example Wire"},
			},
		},
	}
}

func TestProviderInfo(t *testing.T) {
	p := New()
	info := p.Info()
	if info.Name != "gnews" {
		t.Errorf("expected name gnews, got %s", info.Name)
	}
	if info.Website != "https://gnews.io" {
		t.Errorf("unexpected website: %s", info.Website)
	}
	if len(info.Credentials) != 1 {
		t.Fatalf("expected 1 credential, got %d", len(info.Credentials))
	}
	cred := info.Credentials[0]
	if cred.Name != "api_key" || !cred.Required {
		t.Errorf("expected required api_key credential, got %+v", cred)
	}
	if cred.EnvVar != "GNEWS_API_KEY" {
		t.Errorf("unexpected env var: %s", cred.EnvVar)
	}
}

func TestProviderSupportedModels(t *testing.T) {
	p := New()
	got := p.SupportedModels()
	if len(got) != 2 {
		t.Fatalf("expected 2 supported models, got %d", len(got))
	}
	modelSet := make(map[provider.ModelType]bool)
	for _, m := range got {
		modelSet[m] = true
	}
	if !modelSet[provider.ModelNewsSearch] || !modelSet[provider.ModelTopHeadlines] {
		t.Errorf("missing expected models, got %v", got)
	}
}

func TestProviderInitMissingKey(t *testing.T) {
	p := New()
	if err := p.Init(map[string]string{}); err == nil {
		t.Error("expected error for missing api_key")
	}
}

func TestSearchFetch(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Tesla" {
			t.Errorf("expected q=Tesla, got %q", q.Get("q"))
		}
		// Search authenticates with token=, not apikey=.
		if q.Get("token") != "test-key" {
			t.Errorf("expected token=test-key, got %q", q.Get("token"))
		}
		if q.Get("apikey") != "" {
			t.Errorf("search should not send apikey, got %q", q.Get("apikey"))
		}
		if q.Get("lang") != "en" {
			t.Errorf("expected default lang en, got %q", q.Get("lang"))
		}
		if q.Get("max") != "10" {
			t.Errorf("expected default max 10, got %q", q.Get("max"))
		}
		if q.Get("country") != "" {
			t.Errorf("search should not send country, got %q", q.Get("country"))
		}
		writeJSON(t, w, sampleResponse())
	})

	f := p.Fetcher(provider.ModelNewsSearch)
	if f == nil {
		t.Fatal("nil fetcher for news_search")
	}

	result, err := f.Fetch(context.Background(), provider.QueryParams{provider.ParamQuery: "Tesla"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	articles, ok := result.Data.([]models.Article)
	if !ok {
		t.Fatalf("expected []models.Article, got %T", result.Data)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles (title-less dropped), got %d", len(articles))
	}

	a := articles[0]
	if a.Title != "Tesla reports record quarter" {
		t.Errorf("unexpected title: %q", a.Title)
	}
	if a.Description != "Strong growth in deliveries" {
		t.Errorf("unexpected description: %q", a.Description)
	}
	if a.URL != "https://example.com/tesla" {
		t.Errorf("unexpected url: %q", a.URL)
	}
	if a.ImageURL != "https://example.com/tesla.jpg" {
		t.Errorf("unexpected image: %q", a.ImageURL)
	}
	if a.Source != "Example Wire" {
		t.Errorf("unexpected source: %q", a.Source)
	}
	if a.Language != "en" {
		t.Errorf("unexpected language: %q", a.Language)
	}
	want := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Errorf("unexpected published_at: %v", a.PublishedAt)
	}
}

func TestSearchWindowParam(t *testing.T) {
	t.Run("day window sets from", func(t *testing.T) {
		var gotFrom string
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			gotFrom = r.URL.Query().Get("from")
			writeJSON(t, w, apiResponse{})
		})

		_, err := p.Fetcher(provider.ModelNewsSearch).Fetch(context.Background(), provider.QueryParams{
			provider.ParamQuery: "AI",
			provider.ParamFrom:  provider.WindowDay,
		})
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if gotFrom == "" {
			t.Fatal("expected from param for day window")
		}
		start, err := time.Parse(time.RFC3339, gotFrom)
		if err != nil {
			t.Fatalf("from param not RFC3339: %q", gotFrom)
		}
		age := time.Since(start)
		if age < 23*time.Hour || age > 25*time.Hour {
			t.Errorf("expected from roughly 24h ago, got %v (%v old)", start, age)
		}
	})

	t.Run("any window omits from", func(t *testing.T) {
		var gotFrom string
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			gotFrom = r.URL.Query().Get("from")
			writeJSON(t, w, apiResponse{})
		})

		_, err := p.Fetcher(provider.ModelNewsSearch).Fetch(context.Background(), provider.QueryParams{
			provider.ParamQuery: "AI",
			provider.ParamFrom:  provider.WindowAny,
		})
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if gotFrom != "" {
			t.Errorf("expected no from param, got %q", gotFrom)
		}
	})
}

func TestHeadlinesFetch(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top-headlines" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		// Top headlines authenticates with apikey=, not token=.
		if q.Get("apikey") != "test-key" {
			t.Errorf("expected apikey=test-key, got %q", q.Get("apikey"))
		}
		if q.Get("token") != "" {
			t.Errorf("top-headlines should not send token, got %q", q.Get("token"))
		}
		if q.Get("country") != "us" {
			t.Errorf("expected default country us, got %q", q.Get("country"))
		}
		if q.Get("category") != "technology" {
			t.Errorf("expected category technology, got %q", q.Get("category"))
		}
		if q.Get("from") != "" {
			t.Errorf("top-headlines should not send from, got %q", q.Get("from"))
		}
		writeJSON(t, w, sampleResponse())
	})

	result, err := p.Fetcher(provider.ModelTopHeadlines).Fetch(context.Background(), provider.QueryParams{
		provider.ParamCategory: "technology",
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	articles := result.Data.([]models.Article)
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Category != "technology" {
		t.Errorf("expected category carried onto articles, got %q", articles[0].Category)
	}
}

func TestSearchCaching(t *testing.T) {
	hits := 0
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		writeJSON(t, w, sampleResponse())
	})

	f := p.Fetcher(provider.ModelNewsSearch)
	params := provider.QueryParams{provider.ParamQuery: "Tesla"}

	first, err := f.Fetch(context.Background(), params)
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	if first.Cached {
		t.Error("first fetch should not be cached")
	}

	second, err := f.Fetch(context.Background(), params)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if !second.Cached {
		t.Error("second fetch should be served from cache")
	}
	if hits != 1 {
		t.Errorf("expected 1 upstream request, got %d", hits)
	}
}

func TestClampMax(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 10},
		{"5", 5},
		{"20", 20},
		{"50", 20},
		{"0", 1},
		{"-3", 1},
		{"abc", 10},
	}

	for _, tt := range tests {
		params := provider.QueryParams{}
		if tt.raw != "" {
			params[provider.ParamMax] = tt.raw
		}
		if got := clampMax(params); got != tt.want {
			t.Errorf("clampMax(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestHTTPErrorSurfaced(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["Invalid API key"]}`, http.StatusUnauthorized)
	})

	_, err := p.Fetcher(provider.ModelNewsSearch).Fetch(context.Background(), provider.QueryParams{
		provider.ParamQuery: "Tesla",
	})
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	var httpErr *infra.ErrHTTP
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected ErrHTTP, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", httpErr.StatusCode)
	}
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/top-headlines" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.URL.Query().Get("max") != "1" {
				t.Errorf("ping should request a single headline, got max=%q", r.URL.Query().Get("max"))
			}
			writeJSON(t, w, apiResponse{})
		})
		if err := p.Ping(context.Background()); err != nil {
			t.Errorf("Ping: %v", err)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		})
		if err := p.Ping(context.Background()); err == nil {
			t.Error("expected ping error for 403")
		}
	})
}

func TestRegistryIntegration(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, sampleResponse())
	})

	reg := provider.NewRegistry()
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Missing required query param is rejected before any request is made.
	_, err := reg.Fetch(context.Background(), provider.ModelNewsSearch, provider.QueryParams{})
	if err == nil {
		t.Fatal("expected error for missing query param")
	}
	var missing *provider.ErrMissingParam
	if !errors.As(err, &missing) {
		t.Errorf("expected ErrMissingParam, got %T", err)
	}

	result, err := reg.Fetch(context.Background(), provider.ModelNewsSearch, provider.QueryParams{
		provider.ParamQuery: "Tesla",
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Provider != "gnews" {
		t.Errorf("expected provider gnews, got %s", result.Provider)
	}
	if result.Model != provider.ModelNewsSearch {
		t.Errorf("expected model news_search, got %s", result.Model)
	}
}
