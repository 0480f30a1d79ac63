package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"hrpay/internal/platform/logger"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
)

// RateLimit allows limit requests per window for each caller. Authenticated
// callers are keyed by username, everyone else by client IP.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	instance := limiter.New(memory.NewStore(), limiter.Rate{Period: window, Limit: int64(limit)})
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(actorOrIPKey),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.From(r.Context()).Warn().
				Str("key", actorOrIPKey(r)).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Int("limit", limit).
				Msg("rate limit exceeded")
			w.Header().Set("Retry-After", retryAfter(w.Header().Get("X-RateLimit-Reset")))
			api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", requestctx.GetRequestID(r.Context()))
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error(r.Context(), err, "rate limiter failed")
			api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestctx.GetRequestID(r.Context()))
		}),
	)
	return mw.Handler
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.Username != "" {
		return "user:" + user.Username
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

// retryAfter turns the limiter's reset timestamp into a delay in seconds.
func retryAfter(reset string) string {
	at, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return "1"
	}
	return strconv.FormatInt(max(at-time.Now().Unix(), 1), 10)
}
