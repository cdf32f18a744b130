package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/sr-vacancies/internal/clients/smartrecruiters"
	"github.com/maxaizer/sr-vacancies/internal/domain/events"
	"github.com/maxaizer/sr-vacancies/internal/domain/models"
	"github.com/maxaizer/sr-vacancies/internal/logger"
	log "github.com/sirupsen/logrus"
	"time"
)

type postingsFetcher interface {
	FetchPostings(ctx context.Context, params smartrecruiters.SearchParameters) ([]smartrecruiters.Posting, error)
}

type JobsService struct {
	fetcher        postingsFetcher
	bus            EventBus.Bus
	defaultCountry string
}

func NewJobsService(fetcher postingsFetcher, bus EventBus.Bus, defaultCountry string) *JobsService {
	if defaultCountry == "" {
		defaultCountry = smartrecruiters.DefaultCountry
	}
	return &JobsService{fetcher: fetcher, bus: bus, defaultCountry: defaultCountry}
}

// List fetches the postings selected by params and normalizes them into jobs.
func (s *JobsService) List(ctx context.Context, params smartrecruiters.SearchParameters) ([]models.Job, error) {

	if params.Country == "" {
		params.Country = s.defaultCountry
	}

	postings, err := s.fetcher.FetchPostings(ctx, params)
	if err != nil {
		kind, isFetchErr := smartrecruiters.KindOf(err)
		switch {
		case !isFetchErr:
			log.Warnf("rejected postings query %+v: %v", params, err)
		case kind != smartrecruiters.KindCanceled:
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeUpstream).Errorf("failed to fetch postings: %v", err)
		}
		return nil, err
	}

	jobs, rejected := Normalize(postings)
	log.Debugf("normalized %d of %d postings for country %s", len(jobs), len(postings), params.Country)

	s.bus.Publish(events.PostingsFetchedTopic, events.PostingsFetched{
		Country:   params.Country,
		Received:  len(postings),
		Accepted:  len(jobs),
		Dropped:   len(rejected),
		FetchedAt: time.Now(),
	})

	return jobs, nil
}

func (s *JobsService) Search(ctx context.Context, params smartrecruiters.SearchParameters,
	criteria models.Criteria) (View, error) {

	jobs, err := s.List(ctx, params)
	if err != nil {
		return View{}, err
	}
	return BuildView(jobs, criteria), nil
}

func (s *JobsService) Departments(ctx context.Context, country string) ([]string, error) {
	jobs, err := s.List(ctx, smartrecruiters.SearchParameters{Country: country})
	if err != nil {
		return nil, err
	}
	return Departments(jobs), nil
}

func (s *JobsService) Cities(ctx context.Context, country string) ([]string, error) {
	jobs, err := s.List(ctx, smartrecruiters.SearchParameters{Country: country})
	if err != nil {
		return nil, err
	}
	return Cities(jobs), nil
}
