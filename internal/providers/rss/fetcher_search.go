package rss

import (
	"context"
	"fmt"
	"time"

	"github.com/newspulse/newspulse/internal/provider"
)

// --- NewsSearch fetcher ---

type searchFetcher struct {
	provider.BaseFetcher
	p *Provider
}

func newSearchFetcher(p *Provider) *searchFetcher {
	return &searchFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelNewsSearch,
			"Keyword article search from Google News RSS",
			[]string{provider.ParamQuery},
			[]string{provider.ParamFrom, provider.ParamLang, provider.ParamMax},
			provider.DefaultCacheTTL, 2, time.Second,
		),
		p: p,
	}
}

func (f *searchFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	query := params[provider.ParamQuery]

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	feed, err := f.p.parser.ParseURLWithContext(f.p.searchURL(query, params[provider.ParamLang]), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss search %q: %w", query, err)
	}

	articles := toArticles(feed, "")
	articles = filterWindow(articles, params[provider.ParamFrom], time.Now())
	sortByDate(articles)
	if max := clampMax(params); len(articles) > max {
		articles = articles[:max]
	}

	f.CacheSet(cacheKey, articles)
	return newResult(articles), nil
}
