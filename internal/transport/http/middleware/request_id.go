package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"hrpay/internal/platform/logger"
	"hrpay/internal/requestctx"
)

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		ctx = logger.WithRequest(ctx, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
