// Package polymarket provides a client for the Polymarket data and gamma APIs
package polymarket

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bimakw/polywallet/internal/config"
	"github.com/bimakw/polywallet/internal/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultDataAPIURL  = "https://data-api.polymarket.com"
	DefaultGammaAPIURL = "https://gamma-api.polymarket.com"
	DefaultTimeout     = 30 * time.Second
	DefaultRateLimit   = 20 // requests per second
)

// Client talks to the Polymarket HTTP APIs. It never retries; every
// failure is reported once to the caller.
type Client struct {
	dataURL    string
	gammaURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithDataAPIURL sets the base URL of the data API
func WithDataAPIURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.dataURL = strings.TrimRight(baseURL, "/")
	}
}

// WithGammaAPIURL sets the base URL of the gamma API
func WithGammaAPIURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.gammaURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Polymarket client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		dataURL:  DefaultDataAPIURL,
		gammaURL: DefaultGammaAPIURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromConfig creates a client from the application configuration
func NewClientFromConfig(cfg config.PolymarketConfig, logger *zap.Logger) *Client {
	return NewClient(
		WithDataAPIURL(cfg.DataAPIURL),
		WithGammaAPIURL(cfg.GammaAPIURL),
		WithTimeout(cfg.RequestTimeout),
		WithRateLimit(cfg.RateLimitRPS),
		WithLogger(logger),
	)
}

// APIError is a non-2xx response from the upstream API
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   entities.Endpoint
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Status)
}

// ShapeError is a successful response whose payload has the wrong shape
type ShapeError struct {
	Endpoint entities.Endpoint
	Reason   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected payload from %s: %s", e.Endpoint, e.Reason)
}

// get performs a rate-limited GET request and returns the raw body
func (c *Client) get(ctx context.Context, baseURL string, endpoint entities.Endpoint, params url.Values) ([]byte, error) {
	start := time.Now()
	body, err := c.do(ctx, baseURL, endpoint, params)
	observeRequest(endpoint, err, time.Since(start))
	return body, err
}

func (c *Client) do(ctx context.Context, baseURL string, endpoint entities.Endpoint, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := baseURL + string(endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Polymarket API request", zap.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Endpoint:   endpoint,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

// HealthCheck verifies the data API is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.dataURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("data API unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return &APIError{StatusCode: resp.StatusCode, Status: statusText(resp), Endpoint: "/"}
	}
	return nil
}
