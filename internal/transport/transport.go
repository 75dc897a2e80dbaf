// Package transport implements the JSON API send path: one POST endpoint,
// command and token injected into every payload, response envelopes parsed
// into data or a typed API error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// apiPath is the JSON API endpoint, relative to the instance base URL.
const apiPath = "f/api/0/jsonapi"

// Limiter paces outgoing requests. Wait blocks until a request may be
// sent or the context is done.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Config holds the transport settings.
type Config struct {
	BaseURL    string
	Token      string
	UserAgent  string
	HTTPClient *http.Client
	Limiter    Limiter
	Logger     *slog.Logger
}

// Client sends commands to a FogBugz-style JSON API.
type Client struct {
	endpoint  string
	token     string
	userAgent string
	http      *http.Client
	limiter   Limiter
	logger    *slog.Logger
}

// New creates a transport client for the given instance.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}

	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		endpoint:  base.JoinPath(apiPath).String(),
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		http:      httpc,
		limiter:   cfg.Limiter,
		logger:    cfg.Logger,
	}, nil
}

// envelope is the common response shape of the JSON API.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorDetail   `json:"errors"`
}

// Run sends one command and returns the raw "data" member of the response.
// The command name and API token are injected into the payload; params must
// not use the reserved keys "cmd" and "token".
func (c *Client) Run(ctx context.Context, cmd string, params map[string]any) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	payload := make(map[string]any, len(params)+2)
	for k, v := range params {
		payload[k] = v
	}
	payload["cmd"] = cmd
	payload["token"] = c.token

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", cmd, err)
	}

	reqID := uuid.NewString()
	start := time.Now()
	if c.logger != nil {
		c.logger.Debug("sending command", "cmd", cmd, "request_id", reqID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", cmd, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", cmd, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", cmd, err)
	}

	var env envelope
	if uerr := json.Unmarshal(raw, &env); uerr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
		}
		return nil, fmt.Errorf("decode %s response: %w", cmd, uerr)
	}

	if len(env.Errors) > 0 || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Errors: env.Errors}
		if len(env.Errors) == 0 {
			apiErr.Body = string(raw)
		}
		if c.logger != nil {
			c.logger.Warn("command failed",
				"cmd", cmd,
				"request_id", reqID,
				"status", resp.StatusCode,
				"error", apiErr,
			)
		}
		return nil, apiErr
	}

	if c.logger != nil {
		c.logger.Debug("command completed",
			"cmd", cmd,
			"request_id", reqID,
			"duration", time.Since(start),
		)
	}
	return env.Data, nil
}

// Sentinel errors matched by well-known API error codes.
var (
	// ErrNotLoggedOn reports a rejected or expired API token (code 3).
	ErrNotLoggedOn = errors.New("not logged on")
	// ErrArgumentRequired reports a missing required argument (code 10).
	ErrArgumentRequired = errors.New("argument required")
)

// ErrorDetail is one entry of a response "errors" array.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// APIError is a failure reported by the remote API, either as a non-2xx
// status or as a populated errors array in the response envelope.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
	Body       string // raw response when no errors array could be parsed
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		first := e.Errors[0]
		if first.Code != "" {
			return fmt.Sprintf("api error %s: %s", first.Code, first.Message)
		}
		return "api error: " + first.Message
	}
	if e.Body != "" {
		return fmt.Sprintf("api error: http %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api error: http %d", e.StatusCode)
}

// Unwrap maps well-known error codes onto sentinel errors so callers can
// use errors.Is without inspecting codes themselves.
func (e *APIError) Unwrap() error {
	for _, d := range e.Errors {
		switch d.Code {
		case "3":
			return ErrNotLoggedOn
		case "10":
			return ErrArgumentRequired
		}
	}
	return nil
}
