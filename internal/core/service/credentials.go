package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hrkit/leave-system/internal/core/domain"
)

const (
	sessionTTL   = 7 * 24 * time.Hour
	resetAuthTTL = time.Hour
)

// CredentialIssuer produces signed, time-limited bearer credentials bound to
// a user identity. Issuance is a pure function of (user, current time,
// validity window, secret); nothing is persisted.
type CredentialIssuer struct {
	secret string
}

func NewCredentialIssuer(secret string) *CredentialIssuer {
	return &CredentialIssuer{secret: secret}
}

// IssueSession returns a session credential valid for 7 days.
func (i *CredentialIssuer) IssueSession(user *domain.User) (string, error) {
	return i.sign(user, sessionTTL)
}

// IssueResetAuthorization returns a credential valid for 1 hour that
// authorizes only the password-reset completion step.
func (i *CredentialIssuer) IssueResetAuthorization(user *domain.User) (string, error) {
	return i.sign(user, resetAuthTTL)
}

func (i *CredentialIssuer) sign(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.secret))
}
