// Package stars fetches the repository star count shown in the page
// header. The count is decorative: every failure degrades to "unknown".
package stars

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/cipherlab/internal/clock"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTTL     = 10 * time.Minute
	requestTimeout = 5 * time.Second
)

// Client fetches and caches the star count of one repository.
type Client struct {
	baseURL string
	repo    string
	client  *http.Client
	clock   clock.Clock
	ttl     time.Duration

	mu        sync.Mutex
	count     int
	known     bool
	fetchedAt time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithClock replaces the clock used for cache expiry.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithTTL sets how long a fetched count is reused.
func WithTTL(d time.Duration) Option {
	return func(c *Client) { c.ttl = d }
}

// New creates a client for repo in owner/name form.
func New(repo string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		repo:    repo,
		client:  &http.Client{Timeout: requestTimeout},
		clock:   clock.Real{},
		ttl:     defaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type repoResponse struct {
	StargazersCount int `json:"stargazers_count"`
}

// Count returns the star count and whether it is known. A fresh cached
// value is returned without a request. When a refresh fails the previous
// value, if any, is kept.
func (c *Client) Count(ctx context.Context) (int, bool) {
	c.mu.Lock()
	if c.known && c.clock.Now().Sub(c.fetchedAt) < c.ttl {
		n := c.count
		c.mu.Unlock()
		return n, true
	}
	c.mu.Unlock()

	n, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Printf("stars: %v", err)
		return c.count, c.known
	}
	c.count = n
	c.known = true
	c.fetchedAt = c.clock.Now()
	return n, true
}

// Prefetch warms the cache in the background.
func (c *Client) Prefetch(ctx context.Context) {
	go c.Count(ctx)
}

func (c *Client) fetch(ctx context.Context) (int, error) {
	if !strings.Contains(c.repo, "/") {
		return 0, fmt.Errorf("invalid repository %q: want owner/name", c.repo)
	}
	url := c.baseURL + "/repos/" + c.repo

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	var r repoResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}
	return r.StargazersCount, nil
}
