package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/platform/cache"
)

func TestRequestHashDeterministic(t *testing.T) {
	assert.Equal(t, RequestHash([]byte("payload")), RequestHash([]byte("payload")))
	assert.NotEqual(t, RequestHash([]byte("payload")), RequestHash([]byte("other")))
}

func idempotentPost(handler http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var calls atomic.Int32
	handler := Idempotency(cache.NewMemory(), time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"call":` + string(rune('0'+n)) + `}`))
	}))

	first := idempotentPost(handler, "key-1", `{"payrollId":"PR003"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := idempotentPost(handler, "key-1", `{"payrollId":"PR003"}`)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, int32(1), calls.Load())

	conflict := idempotentPost(handler, "key-1", `{"payrollId":"PR004"}`)
	assert.Equal(t, http.StatusConflict, conflict.Code)
	assert.Contains(t, conflict.Body.String(), "idempotency_conflict")
}

func TestIdempotencyDoesNotKeepFailures(t *testing.T) {
	var calls atomic.Int32
	handler := Idempotency(cache.NewMemory(), time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	assert.Equal(t, http.StatusNotFound, idempotentPost(handler, "key-2", `{}`).Code)
	assert.Equal(t, http.StatusCreated, idempotentPost(handler, "key-2", `{}`).Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencyWithoutKeyPassesThrough(t *testing.T) {
	var calls atomic.Int32
	handler := Idempotency(cache.NewMemory(), time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))

	idempotentPost(handler, "", `{}`)
	idempotentPost(handler, "", `{}`)
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencyReleasesClaimOnPanic(t *testing.T) {
	var calls atomic.Int32
	handler := Idempotency(cache.NewMemory(), time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			panic("boom")
		}
		w.WriteHeader(http.StatusCreated)
	}))

	require.PanicsWithValue(t, "boom", func() { idempotentPost(handler, "key-3", `{}`) })

	retry := idempotentPost(handler, "key-3", `{}`)
	assert.Equal(t, http.StatusCreated, retry.Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencyOversizedBody(t *testing.T) {
	var calls atomic.Int32
	handler := BodyLimit(16)(Idempotency(cache.NewMemory(), time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	})))

	rec := idempotentPost(handler, "key-4", `{"note":"`+strings.Repeat("x", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "payload_too_large")
	assert.Equal(t, int32(0), calls.Load())
}
