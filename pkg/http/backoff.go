package http

import (
	"context"
	"time"
)

// BackoffConfig controls retry behaviour for requests that fail with a transport
// error or a 5xx status. 4xx responses are never retried.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultBackoffConfig returns a conservative retry configuration.
func DefaultBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// retryable reports whether the request should be retried for the given outcome.
func retryable(statusCode int, err error) bool {
	if err != nil && statusCode == 0 {
		return true // transport failure, no response received
	}
	return statusCode >= 500
}

// doRequestWithBackoff executes doRequest, retrying per the backoff configuration.
// A nil backoff executes the request exactly once.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if backoff == nil {
		backoff = hc.defaultBackoff
	}
	if backoff == nil || backoff.MaxRetries <= 0 {
		return hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var (
		success any
		errResp any
		status  int
		err     error
	)

	delay := backoff.InitialInterval
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	for attempt := 0; ; attempt++ {
		success, errResp, status, err = hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		if err == nil || !retryable(status, err) || attempt >= backoff.MaxRetries {
			return success, errResp, status, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, status, ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if backoff.MaxInterval > 0 && delay > backoff.MaxInterval {
			delay = backoff.MaxInterval
		}
	}
}
