package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"hrpay/internal/platform/cache"
	"hrpay/internal/platform/logger"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
)

const idempotencyHeader = "Idempotency-Key"

type idempotencyRecord struct {
	Hash    string          `json:"hash"`
	Pending bool            `json:"pending,omitempty"`
	Status  int             `json:"status,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
}

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Idempotency replays the stored response of a POST carrying an
// Idempotency-Key header. The same key with a different body is a 409.
// Only successful responses are kept, for ttl.
func Idempotency(store cache.Cache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if store == nil || key == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			reqID := requestctx.GetRequestID(ctx)

			raw, err := io.ReadAll(r.Body)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
					return
				}
				api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))
			hash := RequestHash(raw)
			cacheKey := "idempotency:" + requestctx.GetActor(ctx) + ":" + r.URL.Path + ":" + key

			if stored, ok, err := store.Get(ctx, cacheKey); err != nil {
				logger.Error(ctx, err, "idempotency lookup failed")
				api.Fail(w, http.StatusInternalServerError, "idempotency_failed", "idempotency check failed", reqID)
				return
			} else if ok {
				replay(w, r, stored, hash)
				return
			}

			pending, _ := json.Marshal(idempotencyRecord{Hash: hash, Pending: true})
			claimed, err := store.SetNX(ctx, cacheKey, pending, ttl)
			if err != nil {
				logger.Error(ctx, err, "idempotency claim failed")
				api.Fail(w, http.StatusInternalServerError, "idempotency_failed", "idempotency check failed", reqID)
				return
			}
			if !claimed {
				api.Fail(w, http.StatusConflict, "idempotency_in_progress", "a request with this idempotency key is in progress", reqID)
				return
			}

			release := func() {
				if err := store.Delete(ctx, cacheKey); err != nil {
					logger.Warn(ctx, err, "idempotency release failed")
				}
			}
			// Recoverer runs outside this middleware; drop the claim before
			// the panic leaves.
			defer func() {
				if p := recover(); p != nil {
					release()
					panic(p)
				}
			}()

			capture := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(capture, r)

			if capture.status < 200 || capture.status >= 300 {
				release()
				return
			}
			final, err := json.Marshal(idempotencyRecord{Hash: hash, Status: capture.status, Body: capture.body.Bytes()})
			if err == nil {
				err = store.Set(ctx, cacheKey, final, ttl)
			}
			if err != nil {
				logger.Warn(ctx, err, "idempotency save failed")
			}
		})
	}
}

func replay(w http.ResponseWriter, r *http.Request, stored []byte, hash string) {
	reqID := requestctx.GetRequestID(r.Context())
	var rec idempotencyRecord
	if err := json.Unmarshal(stored, &rec); err != nil {
		logger.Error(r.Context(), err, "idempotency record unreadable")
		api.Fail(w, http.StatusInternalServerError, "idempotency_failed", "idempotency check failed", reqID)
		return
	}
	switch {
	case rec.Hash != hash:
		api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key was used with a different request body", reqID)
	case rec.Pending:
		api.Fail(w, http.StatusConflict, "idempotency_in_progress", "a request with this idempotency key is in progress", reqID)
	default:
		w.Header().Set("Idempotent-Replayed", "true")
		api.WriteRaw(w, rec.Status, rec.Body)
	}
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}
