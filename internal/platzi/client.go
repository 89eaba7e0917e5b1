package platzi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/metrics"
)

// ProductAPI defines the catalog operations the store depends on.
// This interface is implemented by *Client and can be replaced in tests.
type ProductAPI interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch catalog.Patch) (*catalog.Product, error)
	CreateProduct(ctx context.Context, draft catalog.Draft) (*catalog.Product, error)
}

// Ensure Client implements ProductAPI at compile time.
var _ ProductAPI = (*Client)(nil)

// Client talks to the Platzi fake-store REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	metrics   *metrics.Metrics
}

const (
	// DefaultBaseURL is the public catalog API.
	DefaultBaseURL   = "https://api.escuelajs.co/api/v1"
	defaultUserAgent = "shelf/0.1"
	// DefaultTimeout bounds every request when no other timeout is configured.
	DefaultTimeout = 10 * time.Second
)

// Operation names used in errors and metrics.
const (
	OpList   = "list"
	OpUpdate = "update"
	OpCreate = "create"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMetrics records every request on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient builds a Client rooted at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchProducts retrieves the full product list.
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []catalog.Product
	if _, err := c.do(ctx, OpList, http.MethodGet, "/products", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpdateProduct sends a partial update. The returned product is nil when the
// server answered with an empty body.
func (c *Client) UpdateProduct(ctx context.Context, id int64, patch catalog.Patch) (*catalog.Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload catalog.Product
	path := "/products/" + strconv.FormatInt(id, 10)
	present, err := c.do(ctx, OpUpdate, http.MethodPut, path, patch, &payload)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return &payload, nil
}

// CreateProduct posts a new product and returns the server's record.
func (c *Client) CreateProduct(ctx context.Context, draft catalog.Draft) (*catalog.Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload catalog.Product
	present, err := c.do(ctx, OpCreate, http.MethodPost, "/products/", draft, &payload)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return &payload, nil
}

// do executes one request. It reports whether a response body was decoded into dest.
func (c *Client) do(ctx context.Context, op, method, path string, body, dest any) (bool, error) {
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(reqURL.Path, "/") + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return false, &NetworkError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return false, &NetworkError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRemote(op, 0, time.Since(start))
		return false, &NetworkError{Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.ObserveRemote(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &NetworkError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("api %s returned status %d", path, resp.StatusCode),
		}
	}
	if dest == nil {
		return false, nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return true, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
