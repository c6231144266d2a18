// Package ratelimiter provides throttling for outbound request frequency.
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter bounds operations to limit calls per interval using a token
// bucket. A full interval's worth of calls may pass as an initial burst.
type RateLimiter struct {
	limiter *rate.Limiter
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
	}
}

// WaitIfNeeded blocks until the next call is allowed under the configured rate.
func (rl *RateLimiter) WaitIfNeeded() {
	if err := rl.limiter.Wait(context.Background()); err != nil {
		slog.Warn("rate limiter wait interrupted", "error", err)
	}
}
