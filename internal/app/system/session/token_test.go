// internal/app/system/session/token_test.go
package session_test

import (
	"testing"
	"time"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("local-test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestInspectToken(t *testing.T) {
	iat := time.Now().Add(-time.Minute)
	exp := time.Now().Add(time.Hour)
	raw := signedToken(t, jwt.MapClaims{
		"sub":   "usr-1",
		"aud":   "sentinel",
		"scope": "sentinel:all",
		"iat":   iat.Unix(),
		"exp":   exp.Unix(),
	})

	info, err := session.InspectToken(raw)
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if info.Subject != "usr-1" {
		t.Errorf("Subject = %q, want usr-1", info.Subject)
	}
	if info.Audience != "sentinel" {
		t.Errorf("Audience = %q, want sentinel", info.Audience)
	}
	if info.Scope != "sentinel:all" {
		t.Errorf("Scope = %q, want sentinel:all", info.Scope)
	}
	if info.ExpiresAt.Unix() != exp.Unix() {
		t.Errorf("ExpiresAt = %v, want %v", info.ExpiresAt, exp)
	}
	if info.Expired() {
		t.Error("token with a future expiry reported Expired")
	}
}

func TestInspectTokenExpired(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"sub": "usr-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	info, err := session.InspectToken(raw)
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if !info.Expired() {
		t.Error("token with a past expiry reported not expired")
	}
}

func TestInspectTokenRejectsGarbage(t *testing.T) {
	if _, err := session.InspectToken("not-a-jwt"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}
