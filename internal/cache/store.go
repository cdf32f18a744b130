package cache

import (
	"context"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"time"
)

// Store keeps raw postings by key. Implementations hand out copies, callers
// never share a slice with the store.
type Store interface {
	Get(ctx context.Context, key string) ([]smartrecruiters.Posting, bool, error)
	Set(ctx context.Context, key string, postings []smartrecruiters.Posting, ttl time.Duration) error
	Close() error
}
