package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/auth"
	"hrpay/internal/requestctx"
)

func newAuthService(t *testing.T, secret string) *auth.Service {
	t.Helper()
	svc, err := auth.NewService(secret, time.Hour,
		auth.Account{Username: "admin", Password: "admin-pass", RoleName: auth.RoleHR},
		auth.Account{Username: "viewer", Password: "viewer-pass", RoleName: auth.RoleViewer},
	)
	require.NoError(t, err)
	return svc
}

func tokenFor(t *testing.T, svc *auth.Service, username, password string) string {
	t.Helper()
	tok, err := svc.Login(context.Background(), username, password)
	require.NoError(t, err)
	return tok.Token
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthMiddlewareSetsUser(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	token := tokenFor(t, svc, "admin", "admin-pass")

	var seen auth.UserContext
	var actor string
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		require.True(t, ok)
		seen = user
		actor = requestctx.GetActor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/departments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin", seen.Username)
	assert.Equal(t, auth.RoleHR, seen.RoleName)
	assert.Equal(t, "admin", actor)
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	handler := Auth(svc)(http.HandlerFunc(noContent))

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/departments", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareOpenWhenDisabled(t *testing.T) {
	svc := newAuthService(t, "")
	handler := Auth(svc)(http.HandlerFunc(noContent))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/departments", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReadOnlyRolesLimitsViewerToReads(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	viewer := tokenFor(t, svc, "viewer", "viewer-pass")
	admin := tokenFor(t, svc, "admin", "admin-pass")
	handler := Auth(svc)(ReadOnlyRoles(svc)(http.HandlerFunc(noContent)))

	cases := []struct {
		token  string
		method string
		want   int
	}{
		{viewer, http.MethodGet, http.StatusNoContent},
		{viewer, http.MethodPost, http.StatusForbidden},
		{viewer, http.MethodDelete, http.StatusForbidden},
		{admin, http.MethodPut, http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "/api/employees", nil)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, tc.method)
	}
}

func TestRequirePermission(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	viewer := tokenFor(t, svc, "viewer", "viewer-pass")
	handler := Auth(svc)(RequirePermission(svc, auth.PermAuditRead)(http.HandlerFunc(noContent)))

	req := httptest.NewRequest(http.MethodGet, "/api/audit-events", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
