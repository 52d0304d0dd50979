// Package searchapi is the HTTP client of the catalogue search API.
package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/rubiojr/catalogue/pkg/log"
)

// Header names sent with every request.
const (
	HeaderAPIKey    = "x-api-key"
	HeaderRequestID = "X-Request-ID"
)

// DefaultTimeout applies when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Request is one search call. Filters and Aggregations repeat their
// parameter once per value.
type Request struct {
	Query        string   `url:"q"`
	Size         int      `url:"size"`
	Page         int      `url:"page,omitempty"`
	Sort         string   `url:"sort,omitempty"`
	Filters      []string `url:"filter,omitempty"`
	Aggregations []string `url:"aggs,omitempty"`
	Digitised    bool     `url:"digitised,omitempty"`
}

// Searcher runs search calls. Client implements it.
type Searcher interface {
	Search(ctx context.Context, req Request) (*Response, error)
}

// Client calls the search API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout sets the timeout of each call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient replaces the underlying HTTP client. Apply WithTimeout
// after it to keep a custom timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.ForService("searchapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestIDKey struct{}

// ContextWithRequestID returns a context whose calls forward id upstream.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type responseJSON struct {
	Data         *[]Record     `json:"data"`
	Aggregations []Aggregation `json:"aggregations"`
	Buckets      *[]Bucket     `json:"buckets"`
	Stats        Stats         `json:"stats"`
}

// Search runs GET {baseURL}/search.
//
// A response without records whose group bucket has no entries is reported
// as ErrNotFound: the API matched nothing in any group.
func (c *Client) Search(ctx context.Context, req Request) (*Response, error) {
	endpoint := c.baseURL + "/search"
	reqID := RequestIDFromContext(ctx)
	logger := c.logger
	if reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	fail := func(cause error, status int, msg string) error {
		return &Error{Cause: cause, Message: msg, StatusCode: status, Endpoint: endpoint, RequestID: reqID}
	}

	values, err := query.Values(req)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}
	u := endpoint + "?" + values.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	httpReq.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		httpReq.Header.Set(HeaderAPIKey, c.apiKey)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if reqID != "" {
		httpReq.Header.Set(HeaderRequestID, reqID)
	}

	logger.Debugf("GET %s", u)
	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			logger.Errorf("search api timeout after %s", time.Since(start))
			return nil, fail(ErrTimeout, 0, "The request timed out")
		}
		logger.Errorf("search api connection error: %v", err)
		return nil, fail(ErrConnection, 0, "A connection error occurred")
	}
	defer resp.Body.Close()
	logger.Debugf("search api responded %d in %s", resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest:
		logger.Errorf("bad request: %s", u)
		return nil, fail(ErrBadRequest, resp.StatusCode, "Bad request")
	case resp.StatusCode == http.StatusForbidden:
		logger.Warnf("forbidden")
		return nil, fail(ErrForbidden, resp.StatusCode, "Forbidden")
	case resp.StatusCode == http.StatusNotFound:
		logger.Warnf("resource not found")
		return nil, fail(ErrNotFound, resp.StatusCode, "Resource not found")
	default:
		logger.Errorf("search api responded with %d", resp.StatusCode)
		return nil, fail(ErrBadResponse, resp.StatusCode, "Request failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fail(ErrTimeout, resp.StatusCode, "The request timed out")
		}
		return nil, fail(ErrConnection, resp.StatusCode, "Reading response failed")
	}

	var raw responseJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		logger.Errorf("search api provided non-JSON response")
		return nil, fail(ErrBadResponse, resp.StatusCode, "Non-JSON response provided")
	}
	if raw.Data == nil {
		return nil, fail(ErrBadResponse, resp.StatusCode, "No data returned")
	}
	if raw.Buckets == nil {
		return nil, fail(ErrBadResponse, resp.StatusCode, "No 'buckets' returned")
	}

	out := &Response{
		Records:      *raw.Data,
		Aggregations: raw.Aggregations,
		Buckets:      *raw.Buckets,
		Stats:        raw.Stats,
	}
	if len(out.Records) == 0 && len(out.GroupCounts()) == 0 {
		return nil, fail(ErrNotFound, resp.StatusCode, "No results found")
	}
	return out, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
