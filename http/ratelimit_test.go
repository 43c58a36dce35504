package http

import (
	"context"
	"net/url"
	"testing"
	"time"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", s, err)
	}
	return u
}

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}
	if err := rl.Wait(context.Background(), mustURL(t, "https://www.googleapis.com/")); err != nil {
		t.Errorf("unlimited Wait() = %v, want nil", err)
	}
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		DataAPIRPS: 10.0, // 100ms per request
	})

	ctx := context.Background()
	u := mustURL(t, "https://youtube.googleapis.com/youtube/v3/videos")

	if err := rl.Wait(ctx, u); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	start := time.Now()
	if err := rl.Wait(ctx, u); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Logf("Second request took %v (expected ~100ms)", elapsed)
	}
}

func TestRateLimiterContextCanceled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		DataAPIRPS: 0.1, // one request every 10s
	})

	ctx, cancel := context.WithCancel(context.Background())
	u := mustURL(t, "https://www.googleapis.com/youtube/v3/videos")

	if err := rl.Wait(ctx, u); err != nil {
		t.Fatalf("First Wait failed: %v", err)
	}

	cancel()

	if err := rl.Wait(ctx, u); err == nil {
		t.Fatal("Expected context canceled error")
	}
}

func TestRateLimiterUnlimitedDomain(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimiterConfig())

	ctx := context.Background()
	u := mustURL(t, "http://127.0.0.1:8080/test")

	for i := 0; i < 100; i++ {
		if err := rl.Wait(ctx, u); err != nil {
			t.Fatalf("Wait failed on iteration %d: %v", i, err)
		}
	}
}

func TestRateLimiterNil(t *testing.T) {
	var rl *RateLimiter
	if err := rl.Wait(context.Background(), mustURL(t, "https://www.googleapis.com/")); err != nil {
		t.Errorf("nil RateLimiter.Wait() = %v, want nil", err)
	}
}

func TestRateLimiterOnlyThrottlesDataAPI(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{DataAPIRPS: 0.1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		url       string
		throttled bool
	}{
		{"https://www.googleapis.com/youtube/v3/videos", true},
		{"https://youtube.googleapis.com/youtube/v3/videos", true},
		{"https://googleapis.com/youtube/v3/videos", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"https://rr1---sn-abc.googlevideo.com/videoplayback", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			// a canceled context only fails when the limiter is consulted
			err := rl.Wait(ctx, mustURL(t, tt.url))
			if got := err != nil; got != tt.throttled {
				t.Errorf("Wait(%q) error = %v, throttled want %v", tt.url, err, tt.throttled)
			}
		})
	}
}
