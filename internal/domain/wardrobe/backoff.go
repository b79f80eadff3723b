package wardrobe

import (
	"context"
	"time"
)

// backoff yields exponentially growing delays: initial, 2*initial, 4*initial...
type backoff struct {
	delay time.Duration
}

func newBackoff(initial time.Duration) *backoff {
	return &backoff{delay: initial}
}

func (b *backoff) next() time.Duration {
	d := b.delay
	b.delay *= 2
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
