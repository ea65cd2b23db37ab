package mocks

import (
	"context"

	"github.com/you/authsvc/domain"
)

// MockTwoFactorService implements domain.TwoFactorService interface for testing
type MockTwoFactorService struct {
	GenerateSecretFunc func(ctx context.Context, userID string) (*domain.TwoFactorSetup, error)
	EnableFunc         func(ctx context.Context, userID, code string) ([]string, error)
	DisableFunc        func(ctx context.Context, userID, code string) error
	VerifyFunc         func(ctx context.Context, userID, code string) error
}

// NewMockTwoFactorService creates a new MockTwoFactorService with default behaviors
func NewMockTwoFactorService() *MockTwoFactorService {
	return &MockTwoFactorService{}
}

// GenerateSecret starts enrollment
func (m *MockTwoFactorService) GenerateSecret(ctx context.Context, userID string) (*domain.TwoFactorSetup, error) {
	if m.GenerateSecretFunc != nil {
		return m.GenerateSecretFunc(ctx, userID)
	}
	// Default behavior: fixed setup payload
	return &domain.TwoFactorSetup{
		Secret: "JBSWY3DPEHPK3PXP",
		QRCode: "data:image/png;base64,AAAA",
	}, nil
}

// Enable confirms enrollment
func (m *MockTwoFactorService) Enable(ctx context.Context, userID, code string) ([]string, error) {
	if m.EnableFunc != nil {
		return m.EnableFunc(ctx, userID, code)
	}
	// Default behavior: success with placeholder codes
	return []string{"AAAA1111", "BBBB2222"}, nil
}

// Disable turns off two-factor authentication
func (m *MockTwoFactorService) Disable(ctx context.Context, userID, code string) error {
	if m.DisableFunc != nil {
		return m.DisableFunc(ctx, userID, code)
	}
	// Default behavior: success
	return nil
}

// Verify checks a code without state change
func (m *MockTwoFactorService) Verify(ctx context.Context, userID, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID, code)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.TwoFactorService = (*MockTwoFactorService)(nil)
