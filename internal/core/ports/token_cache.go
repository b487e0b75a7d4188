package ports

import (
	"context"
	"time"

	"github.com/hrkit/leave-system/internal/core/domain"
)

// TokenCache stores ephemeral credentials keyed by (purpose, email) with a
// per-entry TTL. Set replaces any live token for the same pair, so at most
// one is outstanding at any instant. Get reports an absent or lapsed entry
// as domain.ErrTokenNotFound; expiry is never observable as a distinct state.
type TokenCache interface {
	Set(ctx context.Context, purpose domain.TokenPurpose, email, value string, ttl time.Duration) error
	Get(ctx context.Context, purpose domain.TokenPurpose, email string) (string, error)
	Delete(ctx context.Context, purpose domain.TokenPurpose, email string) error
}
