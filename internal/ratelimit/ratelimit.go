// Package ratelimit paces batch case evaluation.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter admits one case at a time at a fixed rate.
type Limiter struct {
	limiter *rate.Limiter
}

// New returns a limiter admitting casesPerSecond cases. Zero or negative
// disables pacing.
func New(casesPerSecond float64) *Limiter {
	if casesPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}

	// Burst of 1: the first case starts immediately, the rest are spaced.
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(casesPerSecond), 1)}
}

// Wait blocks until the next case may start or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a case may start now without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Limit returns the configured rate, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
