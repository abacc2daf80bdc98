package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per identifier so repeated
// failures can be rejected before any hashing work. Backed by Redis
// with a TTL window; a nil throttle disables the check entirely.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle builds a throttle. Returns nil when no client is
// available so callers can skip throttling transparently.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if client == nil || maxAttempts <= 0 {
		return nil
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

func throttleKey(identifier string) string {
	return "login:fail:" + identifier
}

// Blocked reports whether the identifier has exceeded the failure
// budget. Redis errors fail open: an unreachable throttle must not
// lock users out.
func (t *LoginThrottle) Blocked(ctx context.Context, identifier string) bool {
	if t == nil {
		return false
	}
	count, err := t.client.Get(ctx, throttleKey(identifier)).Int()
	if err != nil {
		return false
	}
	return count >= t.maxAttempts
}

// RecordFailure bumps the failure counter, starting the window on the
// first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, identifier string) {
	if t == nil {
		return
	}
	key := throttleKey(identifier)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	if count == 1 {
		t.client.Expire(ctx, key, t.window)
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) {
	if t == nil {
		return
	}
	t.client.Del(ctx, throttleKey(identifier))
}
