package cache

import (
	"context"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	gocache "github.com/patrickmn/go-cache"
	"slices"
	"time"
)

type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]smartrecruiters.Posting, bool, error) {
	if cached, found := m.cache.Get(key); found {
		return slices.Clone(cached.([]smartrecruiters.Posting)), true, nil
	}
	return nil, false, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, postings []smartrecruiters.Posting, ttl time.Duration) error {
	m.cache.Set(key, slices.Clone(postings), ttl)
	return nil
}

func (m *MemoryStore) Close() error {
	m.cache.Flush()
	return nil
}
