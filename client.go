package fogbugz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kailas-cloud/go-fogbugz/internal/ratelimit"
	"github.com/kailas-cloud/go-fogbugz/internal/transport"
)

// Environment variables read by NewFromEnv.
const (
	EnvURL    = "FOGBUGZ_URL"
	EnvAPIKey = "FOGBUGZ_API_KEY"
)

const defaultTimeout = 30 * time.Second

// commandRunner executes one API command and returns the raw data member
// of the response envelope.
type commandRunner interface {
	Run(ctx context.Context, cmd string, params map[string]any) (json.RawMessage, error)
}

// Client is the go-fogbugz SDK entry point.
type Client struct {
	runner commandRunner
	obs    *observer
}

// New creates a Client for the instance at baseURL authenticating with
// the given API token.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("fogbugz: base URL required")
	}
	if token == "" {
		return nil, errors.New("fogbugz: API token required")
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	httpc := cfg.httpClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.timeout}
	}

	var limiter transport.Limiter
	if cfg.rateLimitPerSec > 0 {
		limiter = ratelimit.NewBucket(cfg.rateLimitBurst, cfg.rateLimitPerSec)
	}

	runner, err := transport.New(transport.Config{
		BaseURL:    baseURL,
		Token:      token,
		UserAgent:  cfg.userAgent,
		HTTPClient: httpc,
		Limiter:    limiter,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("fogbugz: %w", err)
	}

	return &Client{runner: runner, obs: obs}, nil
}

// NewFromEnv creates a Client from the FOGBUGZ_URL and FOGBUGZ_API_KEY
// environment variables.
func NewFromEnv(opts ...Option) (*Client, error) {
	baseURL := os.Getenv(EnvURL)
	if baseURL == "" {
		return nil, fmt.Errorf("fogbugz: %s not set", EnvURL)
	}
	token := os.Getenv(EnvAPIKey)
	if token == "" {
		return nil, fmt.Errorf("fogbugz: %s not set", EnvAPIKey)
	}
	return New(baseURL, token, opts...)
}

// Search starts a search request against the case database.
func (c *Client) Search() *SearchRequest {
	return &SearchRequest{runner: c.runner, obs: c.obs}
}

// Cases returns the case management service.
func (c *Client) Cases() *CaseService {
	return &CaseService{runner: c.runner, obs: c.obs}
}

// TimeTracking returns the time tracking service.
func (c *Client) TimeTracking() *TimeTrackingService {
	return &TimeTrackingService{runner: c.runner, obs: c.obs}
}

// Reports returns the reporting service.
func (c *Client) Reports() *ReportService {
	return &ReportService{runner: c.runner, obs: c.obs}
}

// Org returns the organization service: projects, people, areas,
// categories, priorities, statuses, milestones and saved filters.
func (c *Client) Org() *OrgService {
	return &OrgService{runner: c.runner, obs: c.obs}
}
