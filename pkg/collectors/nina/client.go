// Package nina fetches guiding and focus history from a N.I.N.A. instance
// through the Advanced API plugin. Guiding RMS comes from the REST guider
// graph; HFR history is seeded from the REST image history and then kept
// current from IMAGE-SAVE events on the plugin's websocket.
package nina

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// ErrUnexpectedStatus is returned for non-2xx responses and for envelopes
// that report failure.
var ErrUnexpectedStatus = errors.New("nina: unexpected status")

// Default configuration values.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultRetryMax = 2
)

// Client talks to one NINA instance. It implements collectors.Fetcher and
// collectors.Seeder.
type Client struct {
	name   string
	base   *url.URL
	http   *retryablehttp.Client
	logger *slog.Logger
	ring   *Ring

	seeded    atomic.Bool
	listening atomic.Bool

	dialTimeout time.Duration
	reconnect   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used by the client and its retry layer.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRetryMax sets how many times a failed request is retried.
func WithRetryMax(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// WithRetryWait sets the retry back-off bounds.
func WithRetryWait(lo, hi time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = lo
		c.http.RetryWaitMax = hi
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.HTTPClient.Timeout = d }
}

// WithReconnectDelay sets how long Listen waits before redialling.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Client) { c.reconnect = d }
}

// New returns a client for the API rooted at baseURL, for example
// "http://scope.lan:1888/v2/api/".
func New(name, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("nina: parse url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("nina: url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = DefaultRetryMax
	rc.HTTPClient.Timeout = DefaultTimeout
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		name:        name,
		base:        u,
		http:        rc,
		logger:      slog.New(slog.DiscardHandler),
		ring:        NewRing(graph.MaxPoints),
		dialTimeout: DefaultTimeout,
		reconnect:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	rc.Logger = slog.NewLogLogger(c.logger.Handler(), slog.LevelDebug)
	return c, nil
}

// Name returns the instance name.
func (c *Client) Name() string { return c.name }

// Fetch returns up to points samples of kind.
func (c *Client) Fetch(ctx context.Context, kind graph.Kind, points int) (*graph.Buffer, error) {
	points = max(0, min(points, graph.MaxPoints))
	if kind == graph.KindHFR {
		return c.fetchHFR(ctx, points)
	}
	return c.fetchRMS(ctx, points)
}

// ResetSeed makes the next HFR fetch reload history over REST.
func (c *Client) ResetSeed() { c.seeded.Store(false) }

// Ring exposes the live HFR history.
func (c *Client) Ring() *Ring { return c.ring }

// envelope is the wrapper every Advanced API response uses.
type envelope struct {
	Response   json.RawMessage `json:"Response"`
	Error      string          `json:"Error"`
	StatusCode int             `json:"StatusCode"`
	Success    bool            `json:"Success"`
	Type       string          `json:"Type"`
}

// getJSON fetches path relative to the API root and decodes the envelope's
// Response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base.ResolveReference(&url.URL{Path: path, RawQuery: query.Encode()})
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("nina: %s: build request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("nina: %s: %w", path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("nina request", "instance", c.name, "path", path, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s: http %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("nina: %s: decode: %w", path, err)
	}
	if !env.Success && env.Error != "" {
		return fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, path, env.Error)
	}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("nina: %s: decode response: %w", path, err)
	}
	return nil
}
