package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockCredentialValidator implements domain.CredentialValidator interface for testing
type MockCredentialValidator struct {
	ValidateFunc func(ctx context.Context, email, password string) (*domain.User, error)
}

// NewMockCredentialValidator creates a new MockCredentialValidator with default behaviors
func NewMockCredentialValidator() *MockCredentialValidator {
	return &MockCredentialValidator{}
}

// Validate checks email+password
func (m *MockCredentialValidator) Validate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, email, password)
	}
	// Default behavior: rejected
	return nil, domain.ErrInvalidCredentials
}

// Compile-time interface compliance verification
var _ domain.CredentialValidator = (*MockCredentialValidator)(nil)
