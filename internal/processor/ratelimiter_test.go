package processor

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewRateLimiter(10, 5, &mockLogger{})

	for i := 0; i < 5; i++ {
		if !limiter.Allow() {
			t.Fatalf("expected request %d to be allowed within burst", i)
		}
	}
	if limiter.Allow() {
		t.Error("expected request beyond burst to be denied")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(0, 0, &mockLogger{})

	if !limiter.Allow() {
		t.Error("expected default limiter to allow a request")
	}
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewRateLimiter(1, 1, &mockLogger{})

	// Drain the bucket so the next wait has to block.
	limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("expected wait to fail when the context expires first")
	}
}
