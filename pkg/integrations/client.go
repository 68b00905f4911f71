package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/liblens/liblens/pkg/cache"
	"github.com/liblens/liblens/pkg/errors"
)

// httpTimeout bounds every registry request. There is no other timeout or
// retry logic; a slow or failed upstream call surfaces as one error.
const httpTimeout = 10 * time.Second

// NewHTTPClient creates an HTTP client with the standard registry timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Client provides shared HTTP functionality for registry API clients.
// It handles response caching, status mapping, and common request headers.
// All methods are safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	prefix  string
	headers map[string]string
}

// NewClient creates a Client caching responses in backend under keys
// prefixed with prefix (e.g. "pypi:") for ttl. Pass nil headers if no
// default headers are needed.
func NewClient(backend cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		cache:   backend,
		ttl:     ttl,
		prefix:  prefix,
		headers: headers,
	}
}

// Cached retrieves a value from cache or executes fetch and caches the
// result. If refresh is true the cache is bypassed and fetch always runs.
// The fetch function should populate v; on success, v is stored.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	key = c.prefix + key
	if !refresh {
		if data, hit, _ := c.cache.Get(ctx, key); hit {
			if err := json.Unmarshal(data, v); err == nil {
				return nil
			}
			_ = c.cache.Delete(ctx, key)
		}
	}
	if err := fetch(); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with
// the client defaults. Request-specific headers win on conflict.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decode response from %s", url)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "request %s failed", url)
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodePackageNotFound, "resource not found")
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
