package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"client_portal/internal/common"

	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window per-IP limiter for the public endpoints.
// Redis being unreachable fails open: the contact form staying up matters
// more than the limiter.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "ratelimit:" + r.URL.Path + ":" + clientIP(r)
			ctx := r.Context()

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, window)
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				retryAfter := int(window / time.Second)
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retryAfter = int(ttl / time.Second)
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				common.RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP relies on chi's RealIP middleware having already rewritten
// RemoteAddr from X-Forwarded-For.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
