// Package shortdoi resolves DOIs to their short form (10/abcd) via shortdoi.org.
package shortdoi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the shortDOI service endpoint.
	BaseURL = "http://shortdoi.org"

	// DefaultTimeout bounds each lookup.
	DefaultTimeout = 5 * time.Second

	// RateLimit keeps bulk formatting runs polite to the free service.
	RateLimit = 5.0
)

// Resolver looks up the short form of a DOI.
type Resolver interface {
	ShortDOI(ctx context.Context, doi string) (string, error)
}

// Client is a rate-limited HTTP client for shortdoi.org.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit sets the maximum requests per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a new shortDOI client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response is the JSON body returned with ?format=json.
type response struct {
	DOI      string `json:"DOI"`
	ShortDOI string `json:"ShortDOI"`
	IsNew    bool   `json:"IsNew"`
}

// ShortDOI returns the short DOI for doi.
func (c *Client) ShortDOI(ctx context.Context, doi string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.baseURL + "/" + escapeDOI(doi) + "?format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, doi)
	}
	if resp.StatusCode >= 400 {
		return "", &APIError{StatusCode: resp.StatusCode, DOI: doi}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if r.ShortDOI == "" {
		return "", fmt.Errorf("%w: no ShortDOI for %s", ErrInvalidResponse, doi)
	}
	return r.ShortDOI, nil
}

// escapeDOI escapes each path segment of a DOI while keeping its slashes.
func escapeDOI(doi string) string {
	segments := strings.Split(doi, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
