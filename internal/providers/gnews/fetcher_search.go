package gnews

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/newspulse/newspulse/internal/provider"
	"github.com/newspulse/newspulse/pkg/utils"
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
			"Keyword article search from GNews",
			[]string{provider.ParamQuery},
			[]string{provider.ParamFrom, provider.ParamLang, provider.ParamMax},
			provider.DefaultCacheTTL, 1, time.Second,
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

	lang := langOrDefault(params)

	q := url.Values{}
	q.Set("q", query)
	q.Set("lang", lang)
	q.Set("max", strconv.Itoa(clampMax(params)))
	// The search endpoint authenticates with token=, unlike top-headlines.
	q.Set("token", f.p.apiKey)
	if start, ok := utils.WindowStart(params[provider.ParamFrom], time.Now()); ok {
		q.Set("from", start.UTC().Format(time.RFC3339))
	}

	var resp apiResponse
	if err := fetchJSON(ctx, f.p.baseURL+"/search?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("gnews search %q: %w", query, err)
	}

	articles := toArticles(resp.Articles, lang, "")
	f.CacheSet(cacheKey, articles)
	return newResult(articles), nil
}
