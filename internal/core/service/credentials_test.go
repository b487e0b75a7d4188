package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hrkit/leave-system/internal/core/domain"
)

func parseCredential(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("credential invalid: %v", err)
	}
	return claims
}

func credentialValidity(t *testing.T, claims jwt.MapClaims) time.Duration {
	t.Helper()
	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("missing exp: %v", err)
	}
	iat, err := claims.GetIssuedAt()
	if err != nil {
		t.Fatalf("missing iat: %v", err)
	}
	return exp.Sub(iat.Time)
}

func TestCredentialIssuer_Session(t *testing.T) {
	issuer := NewCredentialIssuer("secret")
	user := &domain.User{ID: "u1", Email: "alice@example.com"}

	token, err := issuer.IssueSession(user)
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	claims := parseCredential(t, token, "secret")
	if claims["sub"] != "u1" || claims["email"] != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if validity := credentialValidity(t, claims); validity != 7*24*time.Hour {
		t.Fatalf("expected 7-day validity, got %v", validity)
	}
}

func TestCredentialIssuer_ResetAuthorization(t *testing.T) {
	issuer := NewCredentialIssuer("secret")
	user := &domain.User{ID: "u1", Email: "alice@example.com"}

	token, err := issuer.IssueResetAuthorization(user)
	if err != nil {
		t.Fatalf("IssueResetAuthorization failed: %v", err)
	}

	claims := parseCredential(t, token, "secret")
	if validity := credentialValidity(t, claims); validity != time.Hour {
		t.Fatalf("expected 1-hour validity, got %v", validity)
	}
}

func TestCredentialIssuer_WrongSecretRejected(t *testing.T) {
	issuer := NewCredentialIssuer("secret")
	token, err := issuer.IssueSession(&domain.User{ID: "u1", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	if err == nil && parsed.Valid {
		t.Fatalf("credential verified with wrong secret")
	}
}
