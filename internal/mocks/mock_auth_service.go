package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc           func(ctx context.Context, email, password, name string) (*domain.AuthResult, error)
	LoginFunc              func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginWithTwoFactorFunc func(ctx context.Context, email, password, code string) (*domain.AuthResult, error)
	ProfileFunc            func(ctx context.Context, userID string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new account
func (m *MockAuthService) Register(ctx context.Context, email, password, name string) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, name)
	}
	return &domain.AuthResult{
		User:        &domain.User{ID: "user-1", Email: email, Name: name},
		AccessToken: "token_user-1",
	}, nil
}

// Login performs password-only login
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// LoginWithTwoFactor performs password+TOTP login
func (m *MockAuthService) LoginWithTwoFactor(ctx context.Context, email, password, code string) (*domain.AuthResult, error) {
	if m.LoginWithTwoFactorFunc != nil {
		return m.LoginWithTwoFactorFunc(ctx, email, password, code)
	}
	return nil, domain.ErrInvalidCredentials
}

// Profile fetches an account
func (m *MockAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
