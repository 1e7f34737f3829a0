// Package fetch implements the generic URL fetch surface for the front end.
//
// A [Client] performs plain GET requests and returns the response body as
// text. Non-success statuses surface as a [StatusError] whose message is the
// numeric status (`HTTP 404`), matching what the UI layer displays; transport
// failures are wrapped and propagated untouched. Requests share a single
// rate limiter so a misbehaving front end cannot hammer remote hosts.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// StatusError reports a non-success HTTP status from a fetched URL.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Client fetches URLs on behalf of the front end.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a fetch client.
//
// A nil httpClient falls back to a client with the given timeout; rps <= 0
// disables rate limiting.
func NewClient(httpClient *http.Client, timeout time.Duration, rps float64) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &Client{httpClient: httpClient, limiter: limiter}
}

// Fetch performs a GET request and returns the response body as text.
//
// Returns a [StatusError] for any status outside the 2xx range.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}

// IsStatus reports whether err is a [StatusError] with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
