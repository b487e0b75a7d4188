package domain

import "errors"

// TokenPurpose selects the ephemeral-token namespace for a given email. At
// most one live token exists per (email, purpose); a new issuance replaces
// any prior one.
type TokenPurpose string

const (
	PurposeOTP   TokenPurpose = "otp"
	PurposeReset TokenPurpose = "reset"
)

// ErrTokenNotFound covers both "never issued" and "expired": the cache's TTL
// makes the two indistinguishable, and callers must not rely on a difference.
var ErrTokenNotFound = errors.New("token not found")

var ErrOTPExpired = errors.New("otp expired or not issued")
var ErrOTPInvalid = errors.New("invalid otp")
