package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrpay/internal/domain/auth"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// Authenticator verifies bearer tokens. When it is not enabled the API is open.
type Authenticator interface {
	Enabled() bool
	Verify(token string) (auth.UserContext, error)
}

// Auth requires a valid bearer token on every request it wraps.
func Auth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a == nil || !a.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
				return
			}
			user, err := a.Verify(token)
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", requestctx.GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			ctx = requestctx.WithActor(ctx, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

// RequirePermission rejects authenticated callers whose role lacks permission.
// It is a no-op when authentication is disabled.
func RequirePermission(a Authenticator, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a == nil || !a.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			if !allowed(r, permission) {
				deny(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ReadOnlyRoles maps reads to hr.read and every other method to hr.write,
// which leaves viewers with GET access only.
func ReadOnlyRoles(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a == nil || !a.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			permission := auth.PermWrite
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				permission = auth.PermRead
			}
			if !allowed(r, permission) {
				deny(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func allowed(r *http.Request, permission string) bool {
	user, ok := GetUser(r.Context())
	return ok && auth.HasPermission(user.RoleName, permission)
}

func deny(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestctx.GetRequestID(r.Context()))
}
