package domain

import "time"

// User represents an account in the system
type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string `gorm:"column:password"`
	TwoFactorEnabled bool
	TwoFactorSecret  string
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome.
// When RequiresTwoFactor is true no token has been issued and the client
// must resubmit email+password together with a TOTP code on /auth/login-2fa.
type AuthResult struct {
	User              *User
	AccessToken       string
	RequiresTwoFactor bool
}

// TwoFactorSetup is the result of generating a TOTP enrollment secret
type TwoFactorSetup struct {
	Secret string
	QRCode string // base64 PNG data URL of the provisioning URI
}
