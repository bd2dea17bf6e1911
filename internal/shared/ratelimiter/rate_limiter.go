// Package ratelimiter throttles calls to external APIs.
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface limits how often an operation such as an API call runs.
type RateLimiterInterface interface {
	// Wait blocks until the next call is allowed or ctx is done.
	Wait(ctx context.Context) error
}

// RateLimiter allows limit calls per interval, evenly spaced, with bursts up to limit.
type RateLimiter struct {
	limiter *rate.Limiter
	limit   int
}

// NewRateLimiter creates a new RateLimiter. A non-positive limit disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{limiter: rate.NewLimiter(every, limit), limit: limit}
}

// Wait blocks until a call is allowed.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if r := rl.limiter.Reserve(); r.OK() {
		delay := r.Delay()
		if delay == 0 {
			return nil
		}
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "delay", delay)
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			r.Cancel()
			return ctx.Err()
		}
	}
	return rl.limiter.Wait(ctx)
}
