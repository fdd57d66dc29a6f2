// Package torn provides the HTTP client and snapshot normalization layer for
// the Torn City API.
//
// The v1 API is weakly typed: selections are batched into one call, numeric
// fields come and go between API migrations, and error responses arrive as a
// 200 with an {"error": {...}} envelope. The client surfaces that envelope as
// a typed *APIError; ParseSnapshot applies all defaulting rules in one place
// so business logic never touches the raw document.
package torn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// RawDocument is one fetched, undecoded API response.
type RawDocument map[string]json.RawMessage

// Client is the shared HTTP client for all Torn API endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a Torn API client with rate limiting and a bounded
// request timeout.
func NewClient(baseURL, apiKey string, requestsPerMinute int, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// FetchUser performs one batched /user call for the given comma-separated
// selections.
func (c *Client) FetchUser(ctx context.Context, selections string) (RawDocument, error) {
	return c.get(ctx, "/user/", selections)
}

// FetchCompany performs one batched /company call. Requires a key with
// company (director) access; lesser keys fail with a permission APIError.
func (c *Client) FetchCompany(ctx context.Context, selections string) (RawDocument, error) {
	return c.get(ctx, "/company/", selections)
}

// get performs a rate-limited GET against one Torn endpoint and unwraps the
// API error envelope.
func (c *Client) get(ctx context.Context, path, selections string) (RawDocument, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("selections", selections)
	params.Set("key", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("torn %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var doc RawDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Torn signals failures inside a 200 body.
	if raw, ok := doc["error"]; ok {
		var envelope struct {
			Code    int    `json:"code"`
			Message string `json:"error"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("decode error envelope: %s", truncate(raw, 200))
		}
		return nil, &APIError{Code: envelope.Code, Message: envelope.Message}
	}

	return doc, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
