package shelters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client downloads the shelter list from the shelter app API.
type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
	backoff    func(attempt int) time.Duration
}

func NewClient(url, userAgent string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		url:       url,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		backoff: Backoff,
	}
}

// Fetch downloads and decodes the shelter list. The raw response body is
// returned alongside so callers can keep a copy on disk.
func (c *Client) Fetch(ctx context.Context) ([]Shelter, []byte, error) {
	var body []byte
	var lastErr error
	for attempt := range MaxAttempts {
		body, lastErr = c.get(ctx)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		c.log.Warn("retryable fetch error", "url", c.url, "attempt", attempt, "error", lastErr)
		if attempt == MaxAttempts-1 {
			break
		}
		select {
		case <-time.After(retryDelay(lastErr, attempt, c.backoff)):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, nil, fmt.Errorf("fetch shelters: %w", lastErr)
	}

	list, err := Decode(bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	c.log.Debug("fetched shelters", "url", c.url, "bytes", len(body), "shelters", len(list))
	return list, body, nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if retryableStatus(resp.StatusCode) {
		retryErr := &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			retryErr.RetryAfter, retryErr.HasRetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		}
		return nil, retryErr
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shelters api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}
	return respBody, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
