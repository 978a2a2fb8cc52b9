// Package fetch is the outbound HTTP collaborator. Every remote page read in
// the pipeline goes through Client.Get, which degrades all failure modes to
// an explicit absent result instead of an error: discovery treats a page that
// cannot be fetched the same as a page that does not exist.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/akapil/prospect/internal/model"
)

// DefaultUserAgent identifies the enricher to the sites it visits.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Prospect/1.0; +https://example.com/bot)"

// DefaultTimeout bounds each request.
const DefaultTimeout = 15 * time.Second

// Client wraps http.Client with a user agent and a bounded retry loop.
// Retries apply to transport failures only: a response with any status code
// counts as an answer and is returned as-is for the caller to judge.
type Client struct {
	http       *http.Client
	userAgent  string
	maxRetries int           // extra attempts after the first failure
	backoff    time.Duration // base for linear backoff: backoff * attempt
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetries sets the number of extra attempts after a transport failure.
func WithRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff sets the linear backoff base between attempts. Tests set zero.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// NewClient returns a Client with the default user agent, timeout, and two
// retries with one-second linear backoff.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		maxRetries: 2,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ model.Fetcher = (*Client)(nil)

// Get fetches url. ok is false only when every attempt failed at the
// transport level or the context was cancelled; non-2xx responses return
// ok=true with the status code set so callers can fail closed themselves.
func (c *Client) Get(ctx context.Context, url string) (model.Page, bool) {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.backoff
			select {
			case <-ctx.Done():
				return model.Page{}, false
			case <-time.After(delay):
			}
		}

		page, err := c.do(ctx, url)
		if err == nil {
			return page, true
		}
		if ctx.Err() != nil {
			return model.Page{}, false
		}
	}
	return model.Page{}, false
}

func (c *Client) do(ctx context.Context, url string) (model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Page{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Page{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Page{}, err
	}

	return model.Page{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
