package domain

import "context"

// UserRepository defines account data access operations. Secret and flag
// writes are single-record updates; concurrent writers resolve
// last-write-wins at the store, callers add no locking of their own.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateTwoFactorSecret(ctx context.Context, userID, secret string) error
	EnableTwoFactor(ctx context.Context, userID string) error
	DisableTwoFactor(ctx context.Context, userID string) error
	UpdateLastLogin(ctx context.Context, userID string) error
}

// CredentialValidator checks email+password against the account store.
// Unknown email and wrong password produce the same ErrInvalidCredentials.
type CredentialValidator interface {
	Validate(ctx context.Context, email, password string) (*User, error)
}

// TwoFactorService owns the TOTP lifecycle for an account:
// none -> pending(secret) -> active(secret) -> none.
type TwoFactorService interface {
	GenerateSecret(ctx context.Context, userID string) (*TwoFactorSetup, error)
	Enable(ctx context.Context, userID, code string) ([]string, error)
	Disable(ctx context.Context, userID, code string) error
	Verify(ctx context.Context, userID, code string) error
}

// AuthService defines the login orchestration business logic
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	LoginWithTwoFactor(ctx context.Context, email, password, code string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*User, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer token operations
type TokenService interface {
	Generate(userID, email string, twoFactorSatisfied bool) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// TOTPService defines time-based one-time password operations
type TOTPService interface {
	GenerateSecret(accountEmail string) (secret, provisioningURI string, err error)
	QRCode(provisioningURI string) (string, error)
	Verify(code, secret string) bool
}

// TokenClaims represents the signed claim set of a bearer token
type TokenClaims struct {
	UserID             string `json:"sub"`
	Email              string `json:"email"`
	TwoFactorSatisfied bool   `json:"two_factor_satisfied"`
	IssuedAt           int64  `json:"iat"`
	ExpiresAt          int64  `json:"exp"`
}
