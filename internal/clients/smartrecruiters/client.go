package smartrecruiters

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/sr-vacancies/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL    = "https://api.smartrecruiters.com/v1/companies"
	DefaultCompanyID  = "BoschGroup"
	DefaultPageSize   = 100
	DefaultMaxRecords = 1000
	DefaultTimeout    = 15 * time.Second
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	companyID   string
	pageSize    int
	maxRecords  int
	timeout     time.Duration
}

func NewClient(baseURL, companyID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if companyID == "" {
		companyID = DefaultCompanyID
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		companyID:  companyID,
		pageSize:   DefaultPageSize,
		maxRecords: DefaultMaxRecords,
		timeout:    DefaultTimeout,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) SetPagination(pageSize, maxRecords int) {
	if pageSize > 0 {
		c.pageSize = pageSize
	}
	if maxRecords > 0 {
		c.maxRecords = maxRecords
	}
}

// SetTimeout bounds a whole FetchPostings call, all pages included.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.timeout = timeout
	}
}

func (c *Client) CompanyID() string {
	return c.companyID
}

// FetchPostings pages through the postings endpoint until a short page, the
// reported total, the requested limit or the max records bound is reached.
// It either returns every page or a *FetchError.
func (c *Client) FetchPostings(ctx context.Context, params SearchParameters) ([]Posting, error) {

	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidParameters, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	limit := c.maxRecords
	if params.Limit > 0 && params.Limit < limit {
		limit = params.Limit
	}

	postings := make([]Posting, 0, min(limit, c.pageSize))
	for offset := 0; len(postings) < limit; {

		if err := ctx.Err(); err != nil {
			fetchErr := newTransportError(ctx, errors.Wrapf(err, "stopped before offset %d", offset))
			metrics.UpstreamRequestsCounter.WithLabelValues(string(fetchErr.Kind)).Inc()
			return nil, fetchErr
		}

		pageSize := min(c.pageSize, limit-len(postings))
		page, err := c.getPage(ctx, params, offset, pageSize)
		if err != nil {
			return nil, err
		}

		items := page.postings()
		postings = append(postings, items...)
		log.Debugf("fetched %d postings at offset %d for company %s", len(items), offset, c.companyID)

		if len(items) < pageSize {
			break
		}

		offset += len(items)
		if page.TotalFound > 0 && offset >= page.TotalFound {
			break
		}
	}

	if len(postings) > limit {
		postings = postings[:limit]
	}
	return postings, nil
}

func (c *Client) getPage(ctx context.Context, params SearchParameters, offset, limit int) (*postingsPage, error) {

	apiURL := fmt.Sprintf("%s/%s/postings?%s", c.baseURL, url.PathEscape(c.companyID),
		params.ToUrlParams(offset, limit).Encode())

	start := time.Now()
	body, err := c.sendRequest(ctx, http.MethodGet, apiURL)
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsCounter.WithLabelValues(string(err.Kind)).Inc()
		return nil, err
	}

	var page postingsPage
	if err := json.Unmarshal(body, &page); err != nil {
		metrics.UpstreamRequestsCounter.WithLabelValues(string(KindDecode)).Inc()
		return nil, &FetchError{Kind: KindDecode, Err: errors.Wrap(err, "error decoding JSON response")}
	}

	metrics.UpstreamRequestsCounter.WithLabelValues("ok").Inc()
	return &page, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string) ([]byte, *FetchError) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, newTransportError(ctx, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: errors.Wrap(err, "error creating request")}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError(ctx, errors.Wrap(err, "error sending request"))
	}
	defer resp.Body.Close()

	return c.handleResponse(ctx, resp)
}

func (c *Client) handleResponse(ctx context.Context, resp *http.Response) ([]byte, *FetchError) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(ctx, errors.Wrap(err, "error reading response body"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("request failed with status %v, body: %.200s", resp.StatusCode, string(body)),
		}
	}

	return body, nil
}
