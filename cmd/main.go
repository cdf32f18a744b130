package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/sr-vacancies/internal/api"
	"github.com/maxaizer/sr-vacancies/internal/cache"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/maxaizer/sr-vacancies/internal/config"
	"github.com/maxaizer/sr-vacancies/internal/domain/events"
	"github.com/maxaizer/sr-vacancies/internal/logger"
	"github.com/maxaizer/sr-vacancies/internal/metrics"
	"github.com/maxaizer/sr-vacancies/internal/services"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

type postingsFetcher interface {
	FetchPostings(ctx context.Context, params smartrecruiters.SearchParameters) ([]smartrecruiters.Posting, error)
}

func newClient(cfg config.UpstreamConfig) *smartrecruiters.Client {
	client := smartrecruiters.NewClient(cfg.BaseURL, cfg.CompanyID)
	client.SetPagination(cfg.PageSize, cfg.MaxRecords)
	client.SetTimeout(cfg.Timeout)
	if cfg.MaxRequestsPerSecond > 0 {
		client.SetRateLimit(cfg.MaxRequestsPerSecond)
	}
	return client
}

func newStore(ctx context.Context, cfg config.CacheConfig) cache.Store {
	if cfg.Backend != config.CacheRedis {
		return cache.NewMemoryStore(cfg.TTL)
	}

	store := cache.NewRedisStore(cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := store.Ping(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Errorf("redis is unreachable, requests will fall back to the upstream: %v", err)
	}
	return store
}

// runCache wraps the fetcher with the postings cache and its refresher. The
// returned func releases both.
func runCache(ctx context.Context, cfg *config.Config, fetcher postingsFetcher) (postingsFetcher, func()) {
	if !cfg.Cache.Enabled() {
		log.Info("postings cache disabled")
		return fetcher, func() {}
	}

	store := newStore(ctx, cfg.Cache)
	cached := cache.NewCachedFetcher(fetcher, store, cfg.Cache.TTL)
	log.Infof("postings cache enabled: %s, ttl %v", cfg.Cache.Backend, cfg.Cache.TTL)

	if cfg.Cache.RefreshSchedule == "" {
		return cached, func() { _ = store.Close() }
	}

	refresher, err := services.NewPostingsRefresher(cached, cfg.Cache.RefreshSchedule,
		cfg.Upstream.Country, cfg.Cache.RefreshTimeout)
	if err != nil {
		log.Fatalf("can't create postings refresher: %v", err)
	}
	refresher.Start()

	return cached, func() {
		refresher.Stop()
		_ = store.Close()
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	bus := EventBus.New()
	if err := bus.SubscribeAsync(events.PostingsFetchedTopic, metrics.OnPostingsFetched, false); err != nil {
		log.Fatalf("can't subscribe to %s: %v", events.PostingsFetchedTopic, err)
	}

	fetcher, closeCache := runCache(ctx, cfg, newClient(cfg.Upstream))
	defer closeCache()

	jobs := services.NewJobsService(fetcher, bus, cfg.Upstream.Country)

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.RouterConfig{
		Service:     cfg.Logger.AppName,
		Version:     cfg.Server.Version,
		StaticDir:   cfg.Server.StaticDir,
		DefaultCity: cfg.Search.DefaultCity,
		Development: cfg.Server.IsDevelopment(),
	}, jobs)

	server := api.NewServer(cfg.Server.Address(), router, cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout)

	if err := server.Run(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeInternal).Errorf("server error: %v", err)
	}

	log.Info("Shutting down services...")
	bus.WaitAsync()
	log.Info("Services stopped.")
}
