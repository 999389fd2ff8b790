package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/ratelimit"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// failingLimiter simulates an unreachable limiter backend.
type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (*ratelimit.Result, error) {
	return nil, errors.New("connection refused")
}

func TestIPRateLimitHeaders(t *testing.T) {
	t.Parallel()

	limited := middleware.NewIPRateLimit(ratelimit.NewMemoryLimiter(), "register", 3).Handler(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/register", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, req)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestIPRateLimitPerClient(t *testing.T) {
	t.Parallel()

	limited := middleware.NewIPRateLimit(ratelimit.NewMemoryLimiter(), "login", 1).Handler(okHandler)

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.RemoteAddr = "10.0.0.1:1000"
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, first)
	require.Equal(t, http.StatusOK, w.Code)

	blocked := httptest.NewRequest(http.MethodPost, "/login", nil)
	blocked.RemoteAddr = "10.0.0.1:2000" // same host, different port
	w = httptest.NewRecorder()
	limited.ServeHTTP(w, blocked)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// Another client is unaffected.
	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "10.0.0.2:1000"
	w = httptest.NewRecorder()
	limited.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserRateLimitKeyedByUser(t *testing.T) {
	t.Parallel()

	limited := middleware.NewUserRateLimit(ratelimit.NewMemoryLimiter(), "api", 1).Handler(okHandler)

	userA := uuid.New()
	userB := uuid.New()

	send := func(userID uuid.UUID) int {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.RemoteAddr = "10.0.0.1:1000" // same IP for both users
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req.WithContext(ctx))
		return w.Code
	}

	require.Equal(t, http.StatusOK, send(userA))
	require.Equal(t, http.StatusTooManyRequests, send(userA))

	// A different user behind the same IP keeps their own budget.
	assert.Equal(t, http.StatusOK, send(userB))
}

func TestRateLimitFailsOpen(t *testing.T) {
	t.Parallel()

	limited := middleware.NewIPRateLimit(failingLimiter{}, "register", 1).Handler(okHandler)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/register", nil)
		req.RemoteAddr = "10.0.0.1:1000"
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code,
			"limiter backend failure must not block requests")
	}
}
