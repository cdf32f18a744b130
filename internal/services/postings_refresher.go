package services

import (
	"context"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/maxaizer/sr-vacancies/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type postingsCacheRefresher interface {
	Refresh(ctx context.Context, params smartrecruiters.SearchParameters) (int, error)
}

// PostingsRefresher periodically reloads the default postings into the cache,
// so that most requests are served without waiting for the upstream.
type PostingsRefresher struct {
	cache   postingsCacheRefresher
	cron    *cron.Cron
	params  smartrecruiters.SearchParameters
	timeout time.Duration
}

func NewPostingsRefresher(cache postingsCacheRefresher, schedule string, country string,
	timeout time.Duration) (*PostingsRefresher, error) {

	if schedule == "" {
		return nil, errors.New("refresh schedule must not be empty")
	}

	pr := &PostingsRefresher{
		cache:   cache,
		cron:    cron.New(),
		params:  smartrecruiters.SearchParameters{Country: country},
		timeout: timeout,
	}

	if _, err := pr.cron.AddFunc(schedule, pr.refresh); err != nil {
		return nil, errors.Wrapf(err, "invalid refresh schedule %q", schedule)
	}

	return pr, nil
}

func (pr *PostingsRefresher) Start() {
	pr.cron.Start()
	log.Infof("postings refresher started for country %q", pr.params.Country)
}

func (pr *PostingsRefresher) Stop() {
	<-pr.cron.Stop().Done()
}

func (pr *PostingsRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), pr.timeout)
	defer cancel()

	count, err := pr.cache.Refresh(ctx, pr.params)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeUpstream).Errorf("failed to refresh postings: %v", err)
	} else {
		log.Infof("postings refreshed at %v, cached postings: %d", time.Now(), count)
	}
}
