package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                func(ctx context.Context, user *domain.User) error
	FindByEmailFunc           func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc              func(ctx context.Context, id string) (*domain.User, error)
	UpdateTwoFactorSecretFunc func(ctx context.Context, userID, secret string) error
	EnableTwoFactorFunc       func(ctx context.Context, userID string) error
	DisableTwoFactorFunc      func(ctx context.Context, userID string) error
	UpdateLastLoginFunc       func(ctx context.Context, userID string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// UpdateTwoFactorSecret stores a pending TOTP secret
func (m *MockUserRepository) UpdateTwoFactorSecret(ctx context.Context, userID, secret string) error {
	if m.UpdateTwoFactorSecretFunc != nil {
		return m.UpdateTwoFactorSecretFunc(ctx, userID, secret)
	}
	// Default behavior: success
	return nil
}

// EnableTwoFactor marks two-factor authentication as active
func (m *MockUserRepository) EnableTwoFactor(ctx context.Context, userID string) error {
	if m.EnableTwoFactorFunc != nil {
		return m.EnableTwoFactorFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// DisableTwoFactor clears the flag and stored secret
func (m *MockUserRepository) DisableTwoFactor(ctx context.Context, userID string) error {
	if m.DisableTwoFactorFunc != nil {
		return m.DisableTwoFactorFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// UpdateLastLogin stamps the last successful authentication
func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
