package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiterOptions represents options for the fixed-window rate limiter
type RateLimiterOptions struct {
	// Limit is the maximum number of acquisitions per window
	Limit int
	// Window is the length of the counting window
	Window time.Duration
	// Namespace is the namespace for organizing limiter keys
	Namespace string
}

// NewRateLimiterOptions creates new rate limiter options with default values
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		Limit:     10,
		Window:    1 * time.Minute,
		Namespace: "",
	}
}

// WithLimit sets the maximum number of acquisitions per window
func (rlo *RateLimiterOptions) WithLimit(limit int) *RateLimiterOptions {
	if limit <= 0 {
		panic(fmt.Sprintf("invalid limit: %d, must be positive", limit))
	}
	rlo.Limit = limit
	return rlo
}

// WithWindow sets the length of the counting window
func (rlo *RateLimiterOptions) WithWindow(window time.Duration) *RateLimiterOptions {
	if window <= 0 {
		panic(fmt.Sprintf("invalid window: %v, must be positive", window))
	}
	rlo.Window = window
	return rlo
}

// WithNamespace sets the namespace for limiter keys
func (rlo *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	rlo.Namespace = namespace
	return rlo
}

// RateLimiter is a Redis-backed fixed-window rate limiter.
type RateLimiter struct {
	client *Client
	opts   *RateLimiterOptions
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, opts *RateLimiterOptions) *RateLimiter {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}
	return &RateLimiter{
		client: client,
		opts:   opts,
	}
}

// buildKey builds the namespaced counter key for the current window
func (rl *RateLimiter) buildKey(key string) string {
	window := time.Now().Unix() / int64(rl.opts.Window.Seconds())
	if rl.opts.Namespace != "" {
		return fmt.Sprintf("ratelimit::%s::%s::%d", rl.opts.Namespace, key, window)
	}
	return fmt.Sprintf("ratelimit::%s::%d", key, window)
}

// allowScript counts the acquisition and sets the window expiry on first use.
const allowScript = `
local current = redis.call("incr", KEYS[1])
if current == 1 then
	redis.call("pexpire", KEYS[1], ARGV[1])
end
return current`

// Allow counts one acquisition against the key and reports whether it is within
// the configured limit for the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	result, err := rl.client.Eval(ctx, allowScript, []string{rl.buildKey(key)}, rl.opts.Window.Milliseconds())
	if err != nil {
		return false, fmt.Errorf("failed to evaluate rate limit for %s: %w", key, err)
	}

	count, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected rate limit script result type %T", result)
	}
	return count <= int64(rl.opts.Limit), nil
}
