package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"admin-hub/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestLimiter(t *testing.T, r rate.Limit, burst int) *RateLimiter {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRateLimiter(ctx, r, burst)
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := newTestLimiter(t, rate.Limit(10), 10)

	e := echo.New()
	e.Use(rl.Middleware())
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	// 1 req/s, burst 1: second request should be rejected
	rl := newTestLimiter(t, rate.Limit(1), 1)

	e := echo.New()
	e.Use(rl.Middleware())
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// First request: allowed
	req1 := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec1 := httptest.NewRecorder()
	e.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	// Second request (immediate): rejected
	req2 := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

func TestRateLimiter_RetryAfterHeader(t *testing.T) {
	rl := newTestLimiter(t, rate.Limit(1), 1)

	e := echo.New()
	e.Use(rl.Middleware())
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Exhaust the burst
	req1 := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec1 := httptest.NewRecorder()
	e.ServeHTTP(rec1, req1)

	// Second request triggers rate limit
	req2 := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)

	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.NotEmpty(t, rec2.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentIPsGetSeparateLimits(t *testing.T) {
	rl := newTestLimiter(t, rate.Limit(1), 1)

	e := echo.New()
	e.Use(rl.Middleware())
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// First IP first request: allowed
	req1 := httptest.NewRequest(http.MethodPost, "/login", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	e.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	// Second IP first request: allowed (separate limiter)
	req2 := httptest.NewRequest(http.MethodPost, "/login", nil)
	req2.RemoteAddr = "5.6.7.8:5678"
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)

	// First IP second request: rejected
	req3 := httptest.NewRequest(http.MethodPost, "/login", nil)
	req3.RemoteAddr = "1.2.3.4:1234"
	rec3 := httptest.NewRecorder()
	e.ServeHTTP(rec3, req3)
	assert.Equal(t, http.StatusTooManyRequests, rec3.Code)
}

func TestRateLimiter_RejectionCarriesDomainError(t *testing.T) {
	rl := newTestLimiter(t, PerMinute(1), 1)
	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	first := handler(e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), httptest.NewRecorder()))
	require.NoError(t, first)

	err := handler(e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), httptest.NewRecorder()))
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := newTestLimiter(t, rate.Limit(1), 1)
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	rl.getLimiter("1.2.3.4")
	current = current.Add(limiterIdleTTL + time.Second)
	rl.getLimiter("5.6.7.8")
	rl.evictIdle()

	assert.NotContains(t, rl.limiters, "1.2.3.4")
	assert.Contains(t, rl.limiters, "5.6.7.8")
}

func TestPerMinute(t *testing.T) {
	assert.InDelta(t, 0.5, float64(PerMinute(30)), 1e-9)
}
