package ports

import (
	"context"

	"github.com/hrkit/leave-system/internal/core/domain"
)

type UserService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns a session bearer credential and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error)
}
