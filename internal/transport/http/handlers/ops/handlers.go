package opshandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/logger"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
)

// Pinger reports backend readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Backend Pinger
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

// RegisterProbes mounts the unauthenticated operational endpoints.
func (h *Handler) RegisterProbes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	r.Get("/metrics", h.handleMetrics)
}

// RegisterPublic mounts API routes served without authentication.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/test-connection", h.handleTestConnection)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/jobs/{jobID}", h.handleGetJob)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.Backend.Ping(ctx); err != nil {
		api.Fail(w, http.StatusServiceUnavailable, "not_ready", "backend not ready", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "ready"})
}

// handleTestConnection runs a trivial query against the active backend.
func (h *Handler) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.Backend.Ping(r.Context()); err != nil {
		logger.Error(r.Context(), err, "test connection failed")
		api.Fail(w, http.StatusInternalServerError, "connection_failed", "database connection failed", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"success":   true,
		"message":   "database connection ok",
		"requestId": requestctx.GetRequestID(r.Context()),
	})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot())
}

func (h *Handler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	run, ok := h.Jobs.Get(chi.URLParam(r, "jobID"))
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "job not found", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, run)
}
