// Package ratelimit throttles requests per client key.
package ratelimit

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter reports whether one more request for key fits the quota.
type Limiter interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TokenBucketLimiter is an in-process per-key limiter used when no Redis is configured.
type TokenBucketLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
	idleTTL  time.Duration
}

// NewTokenBucketLimiter allows limit requests per window with a burst of limit.
func NewTokenBucketLimiter(limit int, window time.Duration) *TokenBucketLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &TokenBucketLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idleTTL:  3 * window,
	}
}

func (l *TokenBucketLimiter) Allow(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.evict(now)
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evict drops visitors idle longer than idleTTL. Callers must hold mu.
func (l *TokenBucketLimiter) evict(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, key)
		}
	}
}
