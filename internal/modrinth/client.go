// Package modrinth is a client for the Modrinth v2 API, covering the
// endpoints the browser needs: project search, project details, and the
// release listing of a project.
package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the default Modrinth API base URL.
	DefaultBaseURL = "https://api.modrinth.com/v2"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string sent with API requests. Modrinth
	// asks clients to identify themselves with a contact URL.
	UserAgent = "modseek/dev (https://github.com/steviee/modseek)"
)

// Client is a Modrinth API client.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	rateLimiter *RateLimiter
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// NewClient creates a new Modrinth API client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = UserAgent
	}

	slog.Debug("creating Modrinth API client",
		"base_url", config.BaseURL,
		"timeout", config.Timeout)

	return &Client{
		baseURL:     config.BaseURL,
		httpClient:  &http.Client{Timeout: config.Timeout},
		userAgent:   config.UserAgent,
		rateLimiter: NewRateLimiter(300, time.Minute), // documented API limit
	}
}

// doRequest performs an HTTP request with rate limiting. Failures to reach
// the server come back as a TransportError; HTTP error statuses are left
// for checkResponse so callers can decide what to decode.
func (c *Client) doRequest(ctx context.Context, op, method, path string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	slog.Debug("modrinth API request",
		"method", method,
		"url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	slog.Debug("modrinth API response",
		"status", resp.StatusCode,
		"remaining", c.rateLimiter.Remaining())

	return resp, nil
}

// getJSON performs a GET request and decodes a successful response into out.
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	resp, err := c.doRequest(ctx, op, http.MethodGet, path)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// parseErrorResponse parses an error response from the API.
func parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewAPIError(resp.StatusCode, "API error", resp.Status)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimitExceeded
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.ErrorMsg == "" {
		return NewAPIError(resp.StatusCode, "API error", resp.Status)
	}

	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}

// checkResponse checks if the response is successful.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return parseErrorResponse(resp)
}
