package mocks

import (
	"time"

	"github.com/you/authsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(userID, email string, twoFactorSatisfied bool) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate mints a token
func (m *MockTokenService) Generate(userID, email string, twoFactorSatisfied bool) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, email, twoFactorSatisfied)
	}
	// Default behavior: recognizable fake token
	return "token_" + userID, nil
}

// Validate parses a token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: invalid
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now()
	return &domain.TokenClaims{
		UserID:             "user-1",
		Email:              "user@example.com",
		TwoFactorSatisfied: true,
		IssuedAt:           now.Unix(),
		ExpiresAt:          now.Add(time.Hour).Unix(),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
