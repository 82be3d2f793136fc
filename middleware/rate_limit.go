package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"admin-hub/internal/domain"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL         = 5 * time.Minute
	limiterCleanupInterval = 3 * time.Minute
)

// PerMinute converts a per-minute budget into a rate.Limit.
func PerMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60.0)
}

// clientLimiter holds a rate limiter and the last time it was seen.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter provides per-client rate limiting keyed by client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter creates a new per-client rate limiter. Idle entries are evicted
// until ctx is done.
func NewRateLimiter(ctx context.Context, r rate.Limit, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     r,
		burst:    burst,
		now:      time.Now,
	}
	go rl.cleanupLoop(ctx)
	return rl
}

// getLimiter returns the rate limiter for key, creating one if needed.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, exists := rl.limiters[key]; exists {
		l.lastSeen = rl.now()
		return l.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[key] = &clientLimiter{limiter: limiter, lastSeen: rl.now()}
	return limiter
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, l := range rl.limiters {
		if rl.now().Sub(l.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, key)
		}
	}
}

// Middleware returns an Echo middleware that enforces the rate limit. Rejected
// requests get a Retry-After header and a 429 carrying domain.ErrRateLimited.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.getLimiter(c.RealIP()).Allow() {
				retryAfter := max(int(1.0/float64(rl.rate)), 1)
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded").SetInternal(domain.ErrRateLimited)
			}
			return next(c)
		}
	}
}
