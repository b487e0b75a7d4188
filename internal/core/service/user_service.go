package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrkit/leave-system/internal/core/domain"
	"github.com/hrkit/leave-system/internal/core/ports"
)

// UserService implements signup, login and profile management.
type UserService struct {
	repo   ports.UserRepository
	issuer *CredentialIssuer
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, issuer *CredentialIssuer, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, issuer: issuer, logger: logger}
}

func (s *UserService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:            name,
		Email:           email,
		PasswordHash:    string(hash),
		IsVerified:      false,
		LeavesRemaining: domain.DefaultLeaveBalance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("user created")
	return created, nil
}

// Login authenticates by email and password and returns a 7-day session
// credential. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("email", email).Msg("invalid login attempt")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.IssueSession(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", email).Msg("user logged in")
	return token, user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfilePatch) (*domain.User, error) {
	return s.repo.UpdateProfile(ctx, userID, patch)
}
