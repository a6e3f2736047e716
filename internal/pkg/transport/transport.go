package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"henna-assistant-be/internal/pkg/logger"
)

const (
	defaultMaxAttempts = 3
	defaultMaxWait     = 30 * time.Second
)

// RateLimitedTransport waits out 429 responses that carry a Retry-After header.
type RateLimitedTransport struct {
	base        http.RoundTripper
	logger      logger.ILogger
	maxAttempts int
	maxWait     time.Duration
}

func WithRateLimiting(base http.RoundTripper, log logger.ILogger) *RateLimitedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RateLimitedTransport{
		base:        base,
		logger:      log,
		maxAttempts: defaultMaxAttempts,
		maxWait:     defaultMaxWait,
	}
}

// NewHTTPClient returns a client with an overall timeout and rate-limit handling.
func NewHTTPClient(timeout time.Duration, log logger.ILogger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: WithRateLimiting(nil, log),
	}
}

func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Preserve the original request body for retries
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		if err := req.Body.Close(); err != nil {
			return nil, fmt.Errorf("failed to close request body: %w", err)
		}
	}

	for attempt := 1; ; attempt++ {
		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return resp, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= t.maxAttempts {
			return resp, nil
		}

		wait := retryAfter(resp.Header.Get("Retry-After"))
		if wait <= 0 || wait > t.maxWait {
			return resp, nil
		}

		if err := resp.Body.Close(); err != nil {
			return nil, fmt.Errorf("failed to close response body: %w", err)
		}

		t.logger.Warn("Transport", "Rate limited, waiting", map[string]interface{}{
			"host":    req.URL.Host,
			"wait":    wait.String(),
			"attempt": attempt,
		})

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(wait):
		}
	}
}

// retryAfter parses either delta-seconds or an HTTP date.
func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return time.Until(at)
	}
	return 0
}
