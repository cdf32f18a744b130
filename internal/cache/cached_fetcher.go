package cache

import (
	"context"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/maxaizer/sr-vacancies/internal/metrics"
	log "github.com/sirupsen/logrus"
	"time"
)

type postingsFetcher interface {
	FetchPostings(ctx context.Context, params smartrecruiters.SearchParameters) ([]smartrecruiters.Posting, error)
}

// CachedFetcher serves raw postings from a Store and falls back to the upstream
// on a miss. Store failures are logged and never fail the fetch.
type CachedFetcher struct {
	fetcher postingsFetcher
	store   Store
	ttl     time.Duration
}

func NewCachedFetcher(fetcher postingsFetcher, store Store, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{fetcher: fetcher, store: store, ttl: ttl}
}

func (c *CachedFetcher) FetchPostings(ctx context.Context,
	params smartrecruiters.SearchParameters) ([]smartrecruiters.Posting, error) {

	key := params.CacheKey()
	postings, found, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookupsCounter.WithLabelValues("error").Inc()
		log.Warnf("cache error for %s: %v", key, err)
	case found:
		metrics.CacheLookupsCounter.WithLabelValues("hit").Inc()
		log.Debugf("cache hit for %s", key)
		return postings, nil
	default:
		metrics.CacheLookupsCounter.WithLabelValues("miss").Inc()
	}

	return c.fetchAndStore(ctx, params, key)
}

// Refresh reloads the postings selected by params regardless of what is cached.
func (c *CachedFetcher) Refresh(ctx context.Context, params smartrecruiters.SearchParameters) (int, error) {
	postings, err := c.fetchAndStore(ctx, params, params.CacheKey())
	return len(postings), err
}

func (c *CachedFetcher) fetchAndStore(ctx context.Context, params smartrecruiters.SearchParameters,
	key string) ([]smartrecruiters.Posting, error) {

	postings, err := c.fetcher.FetchPostings(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, key, postings, c.ttl); err != nil {
		log.Warnf("failed to cache postings for %s: %v", key, err)
	}
	return postings, nil
}
