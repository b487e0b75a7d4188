package ports

import (
	"context"

	"github.com/hrkit/leave-system/internal/core/domain"
)

// ProfilePatch carries the mutable profile fields; nil pointers are left
// untouched by the update.
type ProfilePatch struct {
	Name       *string
	ProfilePic *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Save persists mutations on an already-stored user (e.g. the verified flag).
	Save(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)
}
