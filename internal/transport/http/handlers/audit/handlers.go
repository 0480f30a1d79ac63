package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Recorder audit.Recorder
	Auth     middleware.Authenticator
}

func NewHandler(recorder audit.Recorder, authn middleware.Authenticator) *Handler {
	return &Handler{Recorder: recorder, Auth: authn}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(h.Auth, auth.PermAuditRead)).Get("/audit-events", h.handleListEvents)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Recorder.List(r.Context(), shared.ParseLimit(r, 100, 500))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list audit events")
		return
	}
	api.Success(w, events)
}
