// Package transport issues signed HTTP requests against the Kling API.
//
// The transport only moves bytes: any response that arrives is returned as a
// *Response whatever its status code, and envelope interpretation is left to
// the envelope package. Connection and I/O failures surface as
// *apierr.TransportError with kind apierr.ErrNetwork.
//
// A Client is safe for concurrent use. Every request is signed with a freshly
// minted token.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/maauso/kling-go/internal/apierr"
	"github.com/maauso/kling-go/internal/auth"
)

// DefaultBaseURL is the public Singapore endpoint.
const DefaultBaseURL = "https://api-singapore.klingai.com"

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 16 << 20

// Static errors for transport operations.
var (
	// ErrClosed is returned for requests issued after Close.
	ErrClosed = errors.New("kling: client is closed")
	// ErrTokenSourceRequired is returned when no token source is configured.
	ErrTokenSourceRequired = errors.New("transport: token source is required")
)

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any // JSON-encoded when non-nil
}

// Response is a raw API response.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

// Doer is the transport contract consumed by API adapters.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Client is the HTTP implementation of Doer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenSource
	logger     *slog.Logger
	ownsHTTP   bool

	closed    atomic.Bool
	closeOnce sync.Once
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client. The caller keeps ownership of its
// connection pool; Close will not touch it.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
		c.ownsHTTP = false
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if c.ownsHTTP {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client that signs requests with tokens.
func New(tokens auth.TokenSource, opts ...ClientOption) (*Client, error) {
	if tokens == nil {
		return nil, ErrTokenSourceRequired
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		tokens:   tokens,
		logger:   slog.New(slog.DiscardHandler),
		ownsHTTP: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs a single request. It does not retry.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("transport: create request: %w", err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("transport: mint token: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apierr.TransportError{Kind: apierr.ErrNetwork, Method: req.Method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &apierr.TransportError{
			Kind:       apierr.ErrNetwork,
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("read response: %w", err),
		}
	}

	c.logger.Debug("kling request",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	return &Response{
		Method:     req.Method,
		URL:        target,
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}

// Close releases idle pooled connections. It is safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.ownsHTTP {
			c.httpClient.CloseIdleConnections()
		}
	})
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// HTTPClient exposes the underlying HTTP client, shared with media downloads.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Compile-time check that Client implements Doer.
var _ Doer = (*Client)(nil)
