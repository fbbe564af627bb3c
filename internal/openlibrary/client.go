// Package openlibrary is a thin client for the Open Library search and cover
// endpoints.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://openlibrary.org"

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	CoversURL  string
	UserAgent  string
	RPS        float64       // requests per second; <= 0 disables limiting
	Timeout    time.Duration // per-request HTTP timeout
	CacheTTL   time.Duration // successful responses are reused for this long; 0 disables
	HTTPClient *http.Client
}

// Client searches the catalog. Responses are cached per query; failures are
// never cached and never retried.
type Client struct {
	http      *http.Client
	baseURL   string
	coversURL string
	userAgent string
	limiter   *rate.Limiter
	cacheTTL  time.Duration
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]cachedResponse
}

type cachedResponse struct {
	resp    *SearchResponse
	fetched time.Time
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.CoversURL == "" {
		opts.CoversURL = DefaultCoversBase
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "booklog"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}

	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		coversURL: strings.TrimRight(opts.CoversURL, "/"),
		userAgent: opts.UserAgent,
		limiter:   limiter,
		cacheTTL:  opts.CacheTTL,
		now:       time.Now,
		cache:     map[string]cachedResponse{},
	}
}

// Search runs a free-text catalog query. An empty query returns an empty
// response without touching the network.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return emptyResponse(), nil
	}

	if resp, ok := c.cached(query); ok {
		return resp, nil
	}

	u := fmt.Sprintf("%s/search.json?q=%s", c.baseURL, url.QueryEscape(query))
	var res SearchResponse
	if err := c.get(ctx, query, u, &res); err != nil {
		return nil, err
	}
	if res.Docs == nil {
		res.Docs = []Doc{}
	}

	c.store(query, &res)
	return &res, nil
}

// CoverURL returns the image URL for a cover id on the configured host.
func (c *Client) CoverURL(id, size string) string {
	return coverURL(c.coversURL, id, size)
}

// FetchCover downloads a cover image. The caller closes the returned reader.
func (c *Client) FetchCover(ctx context.Context, id, size string) (io.ReadCloser, error) {
	u := c.CoverURL(id, size)
	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, &NetworkError{Query: "cover " + id, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &NetworkError{Query: "cover " + id, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func (c *Client) get(ctx context.Context, query, u string, target interface{}) error {
	resp, err := c.do(ctx, u)
	if err != nil {
		return &NetworkError{Query: query, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Query: query, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding search response for %q: %w", query, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("url", u).Msg("catalog request")
	return c.http.Do(req)
}

func (c *Client) cached(query string) (*SearchResponse, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	hit, ok := c.cache[query]
	if !ok || c.now().Sub(hit.fetched) > c.cacheTTL {
		delete(c.cache, query)
		return nil, false
	}
	return hit.resp, true
}

func (c *Client) store(query string, resp *SearchResponse) {
	if c.cacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[query] = cachedResponse{resp: resp, fetched: c.now()}
}
