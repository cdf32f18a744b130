package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"io"
	"maps"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ErrStopped is returned by Push once the pusher has been stopped.
var ErrStopped = errors.New("loki pusher stopped")

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {

	// TenantKey and TenantValue form the tenant header of multi-tenant setups.
	// The header is omitted when TenantKey is empty.
	TenantKey   string
	TenantValue string

	// Url of the push endpoint, e.g. https://example-prod.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of lines sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time a line waits before being sent
	BatchMaxWait time.Duration `validate:"gte=1"`

	// BufferSize is how many lines Push can queue before it starts dropping them
	BufferSize int `validate:"gte=1"`

	// Labels are added to every stream
	Labels map[string]string

	// Username and Password enable basic auth when both are set
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type Pusher struct {
	config    *Config
	ctx       context.Context
	cancel    context.CancelFunc
	client    *http.Client
	quit      chan struct{}
	stopOnce  sync.Once
	entry     chan LogEntry
	waitGroup sync.WaitGroup
	batch     map[string][]streamValue
	batchSize int
	logger    Logger
}

type LogEntry struct {
	Level   string            `json:"level"`
	Message string            `json:"msg"`
	Caller  string            `json:"caller,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type lokiPushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values []streamValue     `json:"values"`
}

type streamValue []string

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid loki config")
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config: &cfg,
		ctx:    ctx,
		cancel: cancel,
		client: &http.Client{Timeout: 10 * time.Second},
		quit:   make(chan struct{}),
		entry:  make(chan LogEntry, cfg.BufferSize),
		batch:  map[string][]streamValue{},
		logger: logger,
	}

	p.waitGroup.Add(1)
	go p.run()
	return p, nil
}

// Push queues the entry for the next batch. A full queue drops the entry
// instead of blocking the caller.
func (p *Pusher) Push(e LogEntry) error {
	select {
	case <-p.quit:
		return ErrStopped
	default:
	}

	select {
	case p.entry <- e:
		return nil
	default:
		return errors.New("loki buffer is full, entry dropped")
	}
}

// Stop flushes what is already batched and waits for the sender to exit.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.waitGroup.Wait()
		p.cancel()
	})
}

func (p *Pusher) run() {
	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	flush := func(ctx context.Context) {
		if p.batchSize == 0 {
			return
		}
		if err := p.send(ctx); err != nil {
			p.logger.Error("failed to send logs", "error", err)
		}
		clear(p.batch)
		p.batchSize = 0
	}

	defer p.waitGroup.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.quit:
			p.drain()
			ctx, cancel := context.WithTimeout(context.Background(), p.config.BatchMaxWait)
			flush(ctx)
			cancel()
			return
		case entry := <-p.entry:
			p.add(entry)
			if p.batchSize >= p.config.BatchMaxSize {
				flush(p.ctx)
			}
		case <-ticker.C:
			flush(p.ctx)
		}
	}
}

func (p *Pusher) drain() {
	for {
		select {
		case entry := <-p.entry:
			p.add(entry)
		default:
			return
		}
	}
}

func (p *Pusher) add(entry LogEntry) {
	value, err := newLog(entry)
	if err != nil {
		p.logger.Error("failed to encode log entry", "error", err)
		return
	}
	p.batch[entry.Level] = append(p.batch[entry.Level], value)
	p.batchSize++
}

func newLog(entry LogEntry) (streamValue, error) {
	entryJson, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return streamValue{timestamp, string(entryJson)}, nil
}

// streams groups the batch by level so it can be selected by label.
func (p *Pusher) streams() []stream {
	streams := make([]stream, 0, len(p.batch))
	for level, values := range p.batch {
		labels := maps.Clone(p.config.Labels)
		labels["level"] = level
		streams = append(streams, stream{Stream: labels, Values: values})
	}
	return streams
}

func (p *Pusher) send(ctx context.Context) error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(lokiPushRequest{Streams: p.streams()}); err != nil {
		return err
	}

	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if len(p.config.TenantKey) > 0 {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}

	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("received unexpected response code from Loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
