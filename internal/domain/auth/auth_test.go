package auth

import (
	"context"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{Username: "hr", RoleName: RoleHR}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.Username != claims.Username || parsed.RoleName != claims.RoleName {
		t.Fatalf("claims mismatch: %+v", parsed)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestServiceLogin(t *testing.T) {
	svc, err := NewService("test-secret", time.Hour,
		Account{Username: "admin", Password: "admin-pass", RoleName: RoleHR},
		Account{Username: "viewer", Password: "viewer-pass", RoleName: RoleViewer},
		Account{Username: "", Password: "ignored", RoleName: RoleHR},
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tok, err := svc.Login(context.Background(), "viewer", "viewer-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok.Role != RoleViewer {
		t.Fatalf("expected Viewer role, got %s", tok.Role)
	}
	user, err := svc.Verify(tok.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Username != "viewer" || user.RoleName != RoleViewer {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := svc.Login(context.Background(), "admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "admin-pass"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginWithoutSecret(t *testing.T) {
	svc, err := NewService("", time.Hour, Account{Username: "admin", Password: "x", RoleName: RoleHR})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("expected auth to be disabled without a secret")
	}
	if _, err := svc.Login(context.Background(), "admin", "x"); err != ErrAuthDisabled {
		t.Fatalf("expected ErrAuthDisabled, got %v", err)
	}
}
