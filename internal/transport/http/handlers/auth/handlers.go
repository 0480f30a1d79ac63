package authhandler

import (
	"errors"
	"net/http"

	"hrpay/internal/domain/auth"
	"hrpay/internal/platform/logger"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("username", payload.Username)
	v.Required("password", payload.Password)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	token, err := h.Service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.From(r.Context()).Warn().Str("username", payload.Username).Msg("login rejected")
		}
		shared.WriteError(w, r, err, "login failed")
		return
	}
	api.Success(w, token)
}

// HandleMe echoes the caller resolved from the bearer token.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"username":    user.Username,
		"role":        user.RoleName,
		"permissions": auth.RolePermissions[user.RoleName],
	})
}
