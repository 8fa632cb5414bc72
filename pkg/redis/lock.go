package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LockOptions represents options for distributed locking
type LockOptions struct {
	// TTL is the lock expiration time
	TTL time.Duration
	// RetryDelay is the delay between acquisition attempts
	RetryDelay time.Duration
	// MaxRetries is the maximum number of acquisition attempts
	MaxRetries int
	// RefreshInterval is the interval for refreshing the lock
	RefreshInterval time.Duration
	// LockNamespace is the namespace for organizing locks
	LockNamespace string
}

// NewLockOptions creates a new lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      10,
		RefreshInterval: 10 * time.Second,
		LockNamespace:   "",
	}
}

// WithTTL sets the lock expiration time
func (lo *LockOptions) WithTTL(ttl time.Duration) *LockOptions {
	if ttl < 0 {
		panic(fmt.Sprintf("invalid TTL: %v, must be non-negative", ttl))
	}
	lo.TTL = ttl
	return lo
}

// WithRefreshInterval sets the interval for refreshing the lock
func (lo *LockOptions) WithRefreshInterval(interval time.Duration) *LockOptions {
	if interval < 0 {
		panic(fmt.Sprintf("invalid refresh interval: %v, must be non-negative", interval))
	}
	lo.RefreshInterval = interval
	return lo
}

// WithLockNamespace sets the namespace for organizing locks
func (lo *LockOptions) WithLockNamespace(namespace string) *LockOptions {
	lo.LockNamespace = namespace
	return lo
}

// Lock is a Redis-backed distributed lock. The lock value is unique per holder so
// only the owner can release or refresh it.
type Lock struct {
	client *Client
	key    string
	value  string
	opts   *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.New().String(),
		opts:   opts,
	}
}

// NewScheduledTaskLock creates a lock shaped for long-running scheduled tasks:
// acquired once, refreshed forever by AutoRefresh.
func NewScheduledTaskLock(client *Client, key string, ttl time.Duration, refreshInterval time.Duration, namespace string) *Lock {
	opts := NewLockOptions().
		WithTTL(ttl).
		WithRefreshInterval(refreshInterval).
		WithLockNamespace(namespace)
	opts.MaxRetries = 0
	return NewLock(client, key, opts)
}

// buildLockKey builds the namespaced lock key
func (l *Lock) buildLockKey() string {
	if l.opts.LockNamespace != "" {
		return "lock::" + l.opts.LockNamespace + "::" + l.key
	}
	return "lock::" + l.key
}

// Lock attempts to acquire the lock, retrying up to MaxRetries times.
func (l *Lock) Lock(ctx context.Context) error {
	lockKey := l.buildLockKey()

	for attempt := 0; ; attempt++ {
		acquired, err := l.client.SetNX(ctx, lockKey, l.value, l.opts.TTL)
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
		}
		if acquired {
			return nil
		}
		if attempt >= l.opts.MaxRetries {
			return fmt.Errorf("lock %s is held by another instance", lockKey)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}
}

// unlockScript releases the lock only when held by this instance.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// Unlock releases the lock if it is still held by this instance.
func (l *Lock) Unlock(ctx context.Context) error {
	_, err := l.client.Eval(ctx, unlockScript, []string{l.buildLockKey()}, l.value)
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.buildLockKey(), err)
	}
	return nil
}

// refreshScript extends the lock TTL only when held by this instance.
const refreshScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0`

// Refresh extends the lock TTL. It fails when the lock is no longer held by this instance.
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := l.client.Eval(ctx, refreshScript, []string{l.buildLockKey()}, l.value, l.opts.TTL.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to refresh lock %s: %w", l.buildLockKey(), err)
	}
	if refreshed, ok := result.(int64); !ok || refreshed == 0 {
		return fmt.Errorf("lock %s is no longer held by this instance", l.buildLockKey())
	}
	return nil
}

// AutoRefresh refreshes the lock at the configured interval until the context is
// cancelled or a refresh fails. The returned channel yields the terminal error
// (nil on context cancellation) and is then closed.
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		ticker := time.NewTicker(l.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- nil
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}
