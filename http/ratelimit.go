// Package http provides HTTP client infrastructure for YouTube Data API calls.
package http

import (
	"context"
	"net/url"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests to the YouTube Data API with a token bucket.
// Requests to any other host pass through. The limiter lives on the client,
// so callers sharing one client across pipeline runs share one budget.
type RateLimiter struct {
	limiter *rate.Limiter
}

// RateLimiterConfig defines rate limiting behavior.
type RateLimiterConfig struct {
	// DataAPIRPS is requests per second for the YouTube Data API (0 = unlimited).
	DataAPIRPS float64
}

// DefaultRateLimiterConfig returns defaults that stay well inside Data API quotas.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{DataAPIRPS: 1.0}
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{}
	if cfg.DataAPIRPS > 0 {
		rl.limiter = rate.NewLimiter(rate.Limit(cfg.DataAPIRPS), 1)
	}
	return rl
}

// Wait blocks until the rate limit allows a request for the given URL.
// Returns an error if the context is canceled or its deadline would be exceeded.
func (rl *RateLimiter) Wait(ctx context.Context, u *url.URL) error {
	if rl == nil || rl.limiter == nil || u == nil || !isDataAPIHost(u.Hostname()) {
		return nil
	}
	return rl.limiter.Wait(ctx)
}

func isDataAPIHost(host string) bool {
	switch host {
	case "www.googleapis.com", "googleapis.com", "youtube.googleapis.com":
		return true
	}
	return false
}
