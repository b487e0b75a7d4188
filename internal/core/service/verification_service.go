package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrkit/leave-system/internal/api/metrics"
	"github.com/hrkit/leave-system/internal/core/domain"
	"github.com/hrkit/leave-system/internal/core/ports"
)

const (
	otpTTL   = 300 * time.Second
	resetTTL = 600 * time.Second
)

// VerificationService issues and checks OTPs and password-reset tokens held
// in the ephemeral token cache.
type VerificationService struct {
	users    ports.UserRepository
	tokens   ports.TokenCache
	notifier ports.Notifier
	resetURL string
	logger   zerolog.Logger
}

func NewVerificationService(
	users ports.UserRepository,
	tokens ports.TokenCache,
	notifier ports.Notifier,
	resetURL string,
	logger zerolog.Logger,
) *VerificationService {
	return &VerificationService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		resetURL: resetURL,
		logger:   logger,
	}
}

// IssueOTP stores a fresh 6-digit passcode for email (replacing any live one)
// and hands it to the notifier. Delivery failure does not roll back the
// stored token; the code stays valid for its full TTL and the caller may
// simply reissue.
func (s *VerificationService) IssueOTP(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := s.tokens.Set(ctx, domain.PurposeOTP, email, code, otpTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	metrics.OTPIssuedTotal.Inc()

	body := fmt.Sprintf("Your OTP code is %s. It will expire in 5 minutes.", code)
	if err := s.notifier.Send(ctx, email, "Your OTP Code", body); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("otp delivery failed, token remains valid")
	}

	s.logger.Info().Str("email", email).Msg("otp issued")
	return nil
}

// VerifyOTP checks code against the live OTP for email. On match the token is
// consumed and the account's verified flag is persisted; a mismatch leaves
// the token intact so the caller can retry within the TTL.
func (s *VerificationService) VerifyOTP(ctx context.Context, email, code string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	stored, err := s.tokens.Get(ctx, domain.PurposeOTP, email)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
			return domain.ErrOTPExpired
		}
		return fmt.Errorf("read otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		metrics.OTPVerificationsTotal.WithLabelValues("invalid").Inc()
		s.logger.Warn().Str("email", email).Msg("invalid otp attempt")
		return domain.ErrOTPInvalid
	}

	user.IsVerified = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("persist verified flag: %w", err)
	}

	// Single-use: a consumed code must not be replayable.
	if err := s.tokens.Delete(ctx, domain.PurposeOTP, email); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}

	metrics.OTPVerificationsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("email", email).Msg("otp verified")
	return nil
}

// IssueResetToken stores a fresh reset token for email (replacing any live
// one) and mails a reset link. Unlike OTP issuance, the operation exists only
// to deliver the link, so a notifier failure propagates to the caller.
func (s *VerificationService) IssueResetToken(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	if err := s.tokens.Set(ctx, domain.PurposeReset, email, token, resetTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	metrics.ResetTokensIssuedTotal.Inc()

	link := fmt.Sprintf("%s?email=%s&token=%s", s.resetURL, url.QueryEscape(email), token)
	body := fmt.Sprintf("Click to reset your password: %s\nThe link expires in 10 minutes.", link)
	if err := s.notifier.Send(ctx, email, "Reset Password", body); err != nil {
		return fmt.Errorf("send reset link: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("password reset link sent")
	return nil
}

// generateOTP draws a 6-digit code uniformly from [100000, 999999] using a
// cryptographically secure source.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}

// generateResetToken returns 32 random bytes rendered as hex.
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
