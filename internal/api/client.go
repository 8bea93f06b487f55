// Package api is the typed client for the remote wallet backend. The
// backend owns all expense, category, auth, and friend data; this client
// only shapes requests, maps errors, and memoizes idempotent reads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wingwing524/wallet-client/internal/cache"
	"github.com/wingwing524/wallet-client/internal/core"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultCacheSize = 32
	defaultCacheTTL  = 30 * time.Second
)

type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string

	expenseCache  *cache.Cache[[]core.Expense]
	categoryCache *cache.Cache[[]string]
}

type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithCache sizes the read cache for expense and category listings.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		c.expenseCache = cache.New[[]core.Expense](size, ttl)
		c.categoryCache = cache.New[[]string](size, ttl)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpc:         &http.Client{Timeout: defaultTimeout},
		expenseCache:  cache.New[[]core.Expense](defaultCacheSize, defaultCacheTTL),
		categoryCache: cache.New[[]string](defaultCacheSize, defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token attached to every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token and drops cached reads, which may
// belong to the signed-out account.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.expenseCache.Invalidate()
	c.categoryCache.Invalidate()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one request. Transport failures wrap ErrConnection; non-2xx
// responses become a StatusError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		serr := &StatusError{StatusCode: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
		slog.WarnContext(ctx, "API request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode)
		return serr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeErrorMessage(r io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// Health pings the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}
