package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Two-factor errors
var (
	ErrTwoFactorAlreadyEnabled  = errors.New("two-factor authentication already enabled")
	ErrTwoFactorNotEnabled      = errors.New("two-factor authentication not enabled")
	ErrTwoFactorSetupNotStarted = errors.New("two-factor setup not started")
	ErrTwoFactorCodeInvalid     = errors.New("invalid totp code")
	// ErrTwoFactorMisconfigured signals an enabled flag with no stored
	// secret. The account invariant makes this unreachable; treat as internal.
	ErrTwoFactorMisconfigured = errors.New("two-factor authentication misconfigured")
	ErrSecondFactorRequired   = errors.New("second factor required")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)
