package metrics

import (
	"github.com/maxaizer/sr-vacancies/internal/domain/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancies_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	UpstreamRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancies_upstream_requests_total",
			Help: "Total number of postings page requests by outcome.",
		},
		[]string{"outcome"},
	)
	UpstreamRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vacancies_upstream_request_duration_seconds",
			Help:    "Duration of each postings page request in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
	)
	DroppedPostingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vacancies_dropped_postings_total",
			Help: "Total number of upstream postings dropped during normalization.",
		},
	)
	CacheLookupsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancies_cache_lookups_total",
			Help: "Total number of postings cache lookups by result.",
		},
		[]string{"result"},
	)
	HTTPRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancies_http_requests_total",
			Help: "Total number of served HTTP requests.",
		},
		[]string{"route", "status"},
	)
	LastFetchedPostings = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vacancies_last_fetch_postings",
			Help: "Number of jobs produced by the last listing per country.",
		},
		[]string{"country"},
	)
	LastFetchTimestamp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vacancies_last_fetch_timestamp_seconds",
			Help: "Unix time of the last listing per country.",
		},
		[]string{"country"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(UpstreamRequestsCounter)
		prometheus.MustRegister(UpstreamRequestDuration)
		prometheus.MustRegister(DroppedPostingsCounter)
		prometheus.MustRegister(CacheLookupsCounter)
		prometheus.MustRegister(HTTPRequestsCounter)
		prometheus.MustRegister(LastFetchedPostings)
		prometheus.MustRegister(LastFetchTimestamp)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// OnPostingsFetched is subscribed to events.PostingsFetchedTopic.
func OnPostingsFetched(event events.PostingsFetched) {
	DroppedPostingsCounter.Add(float64(event.Dropped))
	LastFetchedPostings.WithLabelValues(event.Country).Set(float64(event.Accepted))
	LastFetchTimestamp.WithLabelValues(event.Country).Set(float64(event.FetchedAt.Unix()))
}
