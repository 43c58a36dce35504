package http

import (
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/googleapi/transport"
)

// Config holds HTTP client configuration for Data API calls.
type Config struct {
	// Timeout for individual HTTP requests
	Timeout time.Duration

	// APIKey is appended to every request as the "key" query parameter.
	// Empty disables key injection.
	APIKey string

	// User agent for HTTP requests
	UserAgent string

	// Rate limiter configuration
	RateLimiter RateLimiterConfig

	// Connection pool configuration
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	// Default: 4
	MaxIdleConns int

	// IdleConnTimeout is the maximum amount of time an idle connection can remain open.
	// Default: 30 seconds
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 forces HTTP/2 for connections to servers that don't explicitly support it.
	// Default: true
	ForceAttemptHTTP2 bool
}

// DefaultConfig returns sensible defaults for HTTP client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		UserAgent:   "clipcut/1.0",
		RateLimiter: DefaultRateLimiterConfig(),
		Transport:   DefaultTransportConfig(),
	}
}

// DefaultTransportConfig returns sensible defaults for HTTP transport configuration.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:      4,
		IdleConnTimeout:   30 * time.Second,
		ForceAttemptHTTP2: true,
	}
}

// New creates an *http.Client that injects the API key, sets the user agent
// and waits on the rate limiter before every request.
func New(cfg *Config) *http.Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		MaxIdleConns:      cfg.Transport.MaxIdleConns,
		IdleConnTimeout:   cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2: cfg.Transport.ForceAttemptHTTP2,
	}

	rt = &limitedTransport{
		base:      rt,
		limiter:   NewRateLimiter(cfg.RateLimiter),
		userAgent: cfg.UserAgent,
	}

	if cfg.APIKey != "" {
		rt = &transport.APIKey{Key: cfg.APIKey, Transport: rt}
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: rt,
	}
}

// limitedTransport applies rate limiting and default headers.
type limitedTransport struct {
	base      http.RoundTripper
	limiter   *RateLimiter
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context(), req.URL); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	return t.base.RoundTrip(req)
}
