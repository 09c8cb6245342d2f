// Package gnews implements the GNews (gnews.io) article provider.
// GNews offers keyword search and top headlines via a REST API with
// API key authentication.
//
// Free tier: 100 requests/day.
// Docs: https://gnews.io/docs/v4
package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/newspulse/newspulse/internal/infra"
	"github.com/newspulse/newspulse/internal/provider"
)

const (
	providerName   = "gnews"
	defaultBaseURL = "https://gnews.io/api/v4"
	credAPIKey     = "api_key"

	defaultLang    = "en"
	defaultCountry = "us"
	defaultMax     = 10
	maxArticles    = 20 // the API returns at most 20 articles per request
)

// Provider implements provider.Provider for GNews.
type Provider struct {
	provider.BaseProvider
	apiKey  string
	baseURL string
}

// New creates a new GNews provider and registers its fetchers.
func New() *Provider {
	p := &Provider{baseURL: defaultBaseURL}
	p.BaseProvider = provider.NewBaseProvider(
		providerName,
		"GNews - keyword search and top headlines",
		"https://gnews.io",
		[]provider.ProviderCredential{
			{
				Name:        credAPIKey,
				Description: "GNews API key from gnews.io",
				Required:    true,
				EnvVar:      "GNEWS_API_KEY",
			},
		},
	)

	p.RegisterFetcher(newSearchFetcher(p))
	p.RegisterFetcher(newHeadlinesFetcher(p))

	return p
}

// Init stores the API key.
func (p *Provider) Init(credentials map[string]string) error {
	if err := p.BaseProvider.Init(credentials); err != nil {
		return err
	}
	p.apiKey = credentials[credAPIKey]
	return nil
}

// SetBaseURL points the provider at a different API root. Tests use this
// to run the fetchers against a local httptest server.
func (p *Provider) SetBaseURL(u string) {
	p.baseURL = strings.TrimSuffix(u, "/")
}

// Ping verifies connectivity and the API key with the cheapest call
// available, a single top headline.
func (p *Provider) Ping(ctx context.Context) error {
	u := fmt.Sprintf("%s/top-headlines?lang=%s&country=%s&max=1&apikey=%s",
		p.baseURL, defaultLang, defaultCountry, url.QueryEscape(p.apiKey))
	body, _, err := infra.DoGet(ctx, u, jsonHeaders())
	if err != nil {
		return fmt.Errorf("gnews ping: %w", err)
	}
	body.Close()
	return nil
}

// --- Shared helpers ---

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

// fetchJSON performs a GET request against the GNews API and decodes the response.
func fetchJSON(ctx context.Context, url string, dest any) error {
	body, _, err := infra.DoGet(ctx, url, jsonHeaders())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse GNews JSON: %w", err)
	}
	return nil
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

// clampMax parses the max param and keeps it within what the API accepts.
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

func langOrDefault(params provider.QueryParams) string {
	if l := params[provider.ParamLang]; l != "" {
		return l
	}
	return defaultLang
}

func countryOrDefault(params provider.QueryParams) string {
	if c := params[provider.ParamCountry]; c != "" {
		return c
	}
	return defaultCountry
}
