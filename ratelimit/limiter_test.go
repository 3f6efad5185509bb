package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestFixedWindowLimiterRedis(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Minute)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	defer limiter.Close()
	if !limiter.Allow("ip-1") {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow("ip-1") {
		t.Fatalf("second request should pass")
	}
	if limiter.Allow("ip-1") {
		t.Fatalf("third request should be blocked")
	}
	if !limiter.Allow("ip-2") {
		t.Fatalf("other keys keep their own quota")
	}
}

func TestFixedWindowLimiterFailsClosed(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Minute)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	redis.Close()
	if limiter.Allow("ip-1") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestFixedWindowLimiterValidation(t *testing.T) {
	if l, err := NewRedisFixedWindowLimiter("", "", "p", 1, time.Second); err == nil || l != nil {
		t.Fatalf("expected error for empty addr")
	}
	if _, err := NewRedisFixedWindowLimiter("localhost:6379", "", "p", 0, time.Second); err == nil {
		t.Fatalf("expected error for zero limit")
	}
}

func TestTokenBucketLimiter(t *testing.T) {
	limiter := NewTokenBucketLimiter(3, time.Hour)
	for i := 0; i < 3; i++ {
		if !limiter.Allow("ip-1") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if limiter.Allow("ip-1") {
		t.Fatalf("fourth request should be blocked")
	}
	if !limiter.Allow("ip-2") {
		t.Fatalf("other keys keep their own quota")
	}
}
