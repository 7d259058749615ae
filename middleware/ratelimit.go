package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const rateLimitMessage = "Too many login attempts. Please try again later."

// LoginRateLimit allows at most maxAttempts requests per client IP within
// window and answers 429 beyond that. Expired entries are swept until ctx is
// done.
func LoginRateLimit(ctx context.Context, maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := newAttemptLimiter(maxAttempts, window)
	go limiter.janitor(ctx, time.Minute)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			if strings.Contains(c.GetHeader("Accept"), "text/html") {
				c.String(http.StatusTooManyRequests, rateLimitMessage)
			} else {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"code":    http.StatusTooManyRequests,
					"message": rateLimitMessage,
				})
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

type attemptLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	store       map[string][]time.Time
}

func newAttemptLimiter(maxAttempts int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		store:       make(map[string][]time.Time),
	}
}

// allow records an attempt for key unless the window is already full
func (l *attemptLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := prune(l.store[key], now.Add(-l.window))
	if len(recent) >= l.maxAttempts {
		l.store[key] = recent
		return false
	}
	l.store[key] = append(recent, now)
	return true
}

func (l *attemptLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	for key, ts := range l.store {
		if recent := prune(ts, cutoff); len(recent) == 0 {
			delete(l.store, key)
		} else {
			l.store[key] = recent
		}
	}
}

func (l *attemptLimiter) janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.sweep(now)
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
