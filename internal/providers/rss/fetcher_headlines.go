package rss

import (
	"context"
	"fmt"
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
			"Top headlines from configured RSS feeds",
			nil,
			[]string{provider.ParamCategory, provider.ParamFrom, provider.ParamMax},
			provider.DefaultCacheTTL, 2, time.Second,
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

	category, feedURL, ok := f.p.feedFor(params[provider.ParamCategory])
	if !ok {
		return nil, fmt.Errorf("no feed configured for category %q", category)
	}

	feed, err := f.p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss headlines %q: %w", category, err)
	}

	articles := toArticles(feed, category)
	articles = filterWindow(articles, params[provider.ParamFrom], time.Now())
	sortByDate(articles)
	if max := clampMax(params); len(articles) > max {
		articles = articles[:max]
	}

	f.CacheSet(cacheKey, articles)
	return newResult(articles), nil
}
