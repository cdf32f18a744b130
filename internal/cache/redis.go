package cache

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"time"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &RedisStore{client: client}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]smartrecruiters.Posting, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var postings []smartrecruiters.Posting
	if err := json.Unmarshal(val, &postings); err != nil {
		return nil, false, errors.Wrapf(err, "corrupted cache entry %s", key)
	}
	return postings, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, postings []smartrecruiters.Posting, ttl time.Duration) error {
	val, err := json.Marshal(postings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, val, ttl).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
