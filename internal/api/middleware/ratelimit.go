package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/ratelimit"
)

// RateLimitMiddleware applies a per-key request budget to a route group. The
// key function determines the limiting dimension (client IP for public
// endpoints, user ID for authenticated ones). When the backing limiter fails
// the request is allowed through rather than turning a limiter outage into an
// API outage.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	scope   string
	limit   int
	window  time.Duration
	keyFn   func(r *http.Request) string
}

// NewIPRateLimit creates rate limiting middleware keyed by client IP.
func NewIPRateLimit(limiter ratelimit.Limiter, scope string, limit int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		scope:   scope,
		limit:   limit,
		window:  time.Minute,
		keyFn:   clientIP,
	}
}

// NewUserRateLimit creates rate limiting middleware keyed by the
// authenticated user ID. It must run after AuthMiddleware.Authenticate; for
// requests without an authenticated user it falls back to the client IP.
func NewUserRateLimit(limiter ratelimit.Limiter, scope string, limit int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		scope:   scope,
		limit:   limit,
		window:  time.Minute,
		keyFn: func(r *http.Request) string {
			if userID, ok := GetUserID(r); ok {
				return userID.String()
			}
			return clientIP(r)
		},
	}
}

// Handler enforces the configured limit and sets the X-RateLimit-* headers on
// every response it handles.
func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := m.scope + ":" + m.keyFn(r)

		result, err := m.limiter.Allow(r.Context(), key, m.limit, m.window)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request",
				"scope", m.scope,
				"error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too Many Attempts.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the remote address without the port. Proxy headers are
// deliberately not consulted; the service is expected to run behind a proxy
// that rewrites RemoteAddr (e.g. chi's RealIP middleware upstream).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
