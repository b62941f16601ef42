package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/postboard/internal/ports"
	"github.com/bft-labs/postboard/pkg/log"
)

// DefaultBaseURL is the JSONPlaceholder-compatible API the posts come from.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

const postsEndpoint = "/posts"

// Config holds the settings of a Client.
type Config struct {
	// BaseURL is prepended to every request path. Trailing slashes are trimmed.
	BaseURL string

	// Timeout bounds each request when the client builds its own http.Client.
	// Default: 15 seconds
	Timeout time.Duration

	// Headers are sent with every request.
	Headers map[string]string

	// Retries is how many times a GET is retried after a transport error
	// or a 5xx/429 response. Zero disables retries.
	Retries int

	// RetryBackoff is the first wait between attempts. It doubles up to
	// two seconds.
	// Default: 200 milliseconds
	RetryBackoff time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      15 * time.Second,
		Retries:      2,
		RetryBackoff: 200 * time.Millisecond,
	}
}

const maxRetryBackoff = 2 * time.Second

// Client is a base-URL-bound HTTP client.
type Client struct {
	baseURL    string
	headers    http.Header
	http       ports.HTTPClient
	logger     log.Logger

	mu         sync.RWMutex
	instanceID string

	retries      int
	retryBackoff time.Duration
}

// Option configures optional behavior of a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc ports.HTTPClient) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithInstanceID tags requests with the id of the app that owns the client.
func WithInstanceID(id string) Option {
	return func(c *Client) {
		c.instanceID = id
	}
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}

	headers := make(http.Header)
	headers.Set("Accept", "application/json")
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: headers,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  log.NewNoopLogger(),

		retries:      cfg.Retries,
		retryBackoff: cfg.RetryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstanceID returns the app id requests are tagged with.
func (c *Client) InstanceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.instanceID
}

// SetInstanceID tags subsequent requests with id.
func (c *Client) SetInstanceID(id string) {
	c.mu.Lock()
	c.instanceID = id
	c.mu.Unlock()
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest builds a request for path relative to the base URL.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

// Do sends req with the default headers and a fresh X-Request-Id.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for k, vs := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header[k] = vs
		}
	}
	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	if id := c.InstanceID(); id != "" {
		req.Header.Set("X-Postboard-Instance", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("http request failed",
			log.String("method", req.Method),
			log.String("url", req.URL.String()),
			log.Err(err),
		)
		return nil, err
	}
	c.logger.Debug("http request",
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.Int("status", resp.StatusCode),
		log.Duration("took", time.Since(start)),
	)
	return resp, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

// GetJSON fetches path and decodes the JSON body into dst.
// It returns the response headers on success. Transient failures are
// retried up to Config.Retries times.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dst any) (http.Header, error) {
	b := newBackoff(c.retryBackoff, maxRetryBackoff)
	for attempt := 0; ; attempt++ {
		header, err := c.getJSON(ctx, path, query, dst)
		if err == nil || attempt >= c.retries || !retryable(ctx, err) {
			return header, err
		}
		c.logger.Warn("retrying request",
			log.String("path", path),
			log.Int("attempt", attempt+1),
			log.Err(err),
		)
		if waitErr := b.Wait(ctx); waitErr != nil {
			return nil, err
		}
	}
}

// retryable reports whether err is worth another attempt.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500 || statusErr.Code == http.StatusTooManyRequests
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) (http.Header, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.Header, nil
}

// CloseIdleConnections closes idle keep-alive connections of the underlying
// client when it supports it.
func (c *Client) CloseIdleConnections() {
	if ci, ok := c.http.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}
