package gnews

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/newspulse/newspulse/internal/provider"
)

// --- TopHeadlines fetcher ---

type headlinesFetcher struct {
	provider.BaseFetcher
	p *Provider
}

func newHeadlinesFetcher(p *Provider) *headlinesFetcher {
	return &headlinesFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelTopHeadlines,
			"Top headlines from GNews",
			nil,
			[]string{provider.ParamQuery, provider.ParamLang, provider.ParamCountry, provider.ParamCategory, provider.ParamMax},
			provider.DefaultCacheTTL, 1, time.Second,
		),
		p: p,
	}
}

func (f *headlinesFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	lang := langOrDefault(params)
	category := params[provider.ParamCategory]

	q := url.Values{}
	q.Set("lang", lang)
	q.Set("country", countryOrDefault(params))
	q.Set("max", strconv.Itoa(clampMax(params)))
	// Unlike search, this endpoint authenticates with apikey=.
	q.Set("apikey", f.p.apiKey)
	if query := params[provider.ParamQuery]; query != "" {
		q.Set("q", query)
	}
	if category != "" {
		q.Set("category", category)
	}

	var resp apiResponse
	if err := fetchJSON(ctx, f.p.baseURL+"/top-headlines?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("gnews top headlines: %w", err)
	}

	articles := toArticles(resp.Articles, lang, category)
	f.CacheSet(cacheKey, articles)
	return newResult(articles), nil
}
