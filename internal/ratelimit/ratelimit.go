package ratelimit

import (
	"context"
	"sync"
	"time"

	"media-indexer/internal/logging"
	"media-indexer/internal/metrics"
)

// Limiter is a blocking admission-control primitive for one provider.
// It enforces a maximum number of requests per rolling window and a minimum
// delay between consecutive requests.
type Limiter struct {
	name        string
	maxRequests int
	window      time.Duration
	minDelay    time.Duration

	mu          sync.Mutex
	count       int
	windowStart time.Time
	lastRequest time.Time
}

// New creates a Limiter. The name labels log lines and metrics.
func New(name string, maxRequests int, window, minDelay time.Duration) *Limiter {
	return &Limiter{
		name:        name,
		maxRequests: maxRequests,
		window:      window,
		minDelay:    minDelay,
	}
}

// Acquire blocks until a request may proceed under the rolling quota and the
// minimum inter-request gap, then records the request and returns. It returns
// the context's error if the context is cancelled while waiting.
//
// Guarantee: no two accepted requests on this limiter start closer together
// than the configured minimum delay, and at most maxRequests are accepted per
// window.
func (l *Limiter) Acquire(ctx context.Context) error {
	waitStart := time.Now()

	for {
		l.mu.Lock()
		now := time.Now()

		if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
			l.count = 0
			l.windowStart = now
		}

		var wait time.Duration
		switch {
		case l.count >= l.maxRequests:
			wait = l.window - now.Sub(l.windowStart)
			logging.Debug("Rate limiter %s: window quota reached (%d), waiting %v", l.name, l.count, wait)
		case !l.lastRequest.IsZero() && now.Sub(l.lastRequest) < l.minDelay:
			wait = l.minDelay - now.Sub(l.lastRequest)
		default:
			l.count++
			l.lastRequest = now
			l.mu.Unlock()
			metrics.RateLimiterWaitDuration.WithLabelValues(l.name).Observe(time.Since(waitStart).Seconds())
			return nil
		}
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Name returns the provider label this limiter was created with.
func (l *Limiter) Name() string {
	return l.name
}
