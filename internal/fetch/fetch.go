package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrNoSession is returned when Fetch is called without a session cookie.
var ErrNoSession = errors.New("session cookie is empty")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Cache stores fetched bodies keyed by URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

type Client struct {
	HTTP   *http.Client
	Cache  Cache
	Logger *slog.Logger
}

func NewClient(timeout time.Duration, cache Cache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		HTTP:   &http.Client{Timeout: timeout},
		Cache:  cache,
		Logger: logger,
	}
}

// Fetch returns the body at url, sending session as the "session" cookie.
// A cached body is returned without contacting the server.
func (c *Client) Fetch(ctx context.Context, url, session string) ([]byte, error) {
	if session == "" {
		return nil, ErrNoSession
	}

	if c.Cache != nil {
		body, ok, err := c.Cache.Get(ctx, url)
		if err != nil {
			c.Logger.Warn("cache lookup failed", "url", url, "error", err)
		} else if ok {
			c.Logger.Debug("input served from cache", "url", url, "bytes", len(body))
			return body, nil
		}
	}

	body, err := c.get(ctx, url, session)
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.Put(ctx, url, body); err != nil {
			c.Logger.Warn("cache store failed", "url", url, "error", err)
		}
	}

	return body, nil
}

func (c *Client) get(ctx context.Context, url, session string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.AddCookie(&http.Cookie{
		Name:  "session",
		Value: session,
	})

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.Logger.Debug("input fetched", "url", url, "status", resp.StatusCode,
		"bytes", len(body), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
