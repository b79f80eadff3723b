package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyLimiter counts requests per key in fixed one-minute windows stored in
// Valkey, so every replica shares the same budget.
type ValkeyLimiter struct {
	client valkey.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewValkeyLimiter allows requestsPerMinute per key and window.
func NewValkeyLimiter(client valkey.Client, prefix string, requestsPerMinute int) *ValkeyLimiter {
	if prefix == "" {
		prefix = "wardrobe:ratelimit"
	}
	return &ValkeyLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(requestsPerMinute),
		window: time.Minute,
		now:    time.Now,
	}
}

// Allow implements Limiter.
func (l *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.bucketKey(key)
	resps := l.client.DoMulti(ctx,
		l.client.B().Incr().Key(bucket).Build(),
		l.client.B().Expire().Key(bucket).Seconds(int64(l.window.Seconds())).Build(),
	)
	count, err := resps[0].AsInt64()
	if err != nil {
		return false, fmt.Errorf("increment rate limit bucket: %w", err)
	}
	if err := resps[1].Error(); err != nil {
		return false, fmt.Errorf("expire rate limit bucket: %w", err)
	}
	return count <= l.limit, nil
}

func (l *ValkeyLimiter) bucketKey(key string) string {
	window := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, window)
}

var _ Limiter = (*ValkeyLimiter)(nil)
