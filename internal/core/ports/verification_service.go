package ports

import "context"

// VerificationService owns the lifecycle of OTPs and password-reset tokens.
type VerificationService interface {
	// IssueOTP generates a one-time passcode for email and hands it to the
	// notifier. A replaced prior OTP is implicitly invalidated.
	IssueOTP(ctx context.Context, email string) error
	// VerifyOTP consumes the live OTP on success and flips the account's
	// verified flag. A failed attempt leaves the token intact for retry.
	VerifyOTP(ctx context.Context, email, code string) error
	// IssueResetToken generates a password-reset token and mails a reset link.
	IssueResetToken(ctx context.Context, email string) error
}
