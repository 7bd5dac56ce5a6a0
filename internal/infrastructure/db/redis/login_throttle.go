package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLoginLimit  = 10
	defaultLoginWindow = time.Minute
)

// throttleScript counts one attempt and returns {count, pttl}. The window is
// (re)applied whenever the key has no expiry, so a counter can never outlive
// its window.
var throttleScript = redis.NewScript(`
	local n = redis.call('INCR', KEYS[1])
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return { n, ttl }
`)

// LoginThrottle is a fixed-window attempt counter backed by Redis.
// Key format: login:throttle:<client key>
type LoginThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginThrottle allows limit attempts per window for each key.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	if limit <= 0 {
		limit = defaultLoginLimit
	}
	if window <= 0 {
		window = defaultLoginWindow
	}
	return &LoginThrottle{client: client, limit: int64(limit), window: window}
}

// Allow counts one attempt for key and reports whether it is still within the
// limit, together with the time left until the window resets.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	vals, err := throttleScript.Run(ctx, t.client, []string{t.key(key)}, t.window.Milliseconds()).Int64Slice()
	if err != nil {
		return true, 0, fmt.Errorf("login throttle: %w", err)
	}
	if len(vals) != 2 {
		return true, 0, fmt.Errorf("login throttle: unexpected script result %v", vals)
	}

	n, ttl := vals[0], time.Duration(vals[1])*time.Millisecond
	return n <= t.limit, ttl, nil
}

func (t *LoginThrottle) key(clientKey string) string {
	return fmt.Sprintf("login:throttle:%s", clientKey)
}
