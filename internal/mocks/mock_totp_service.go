package mocks

import "github.com/you/authsvc/domain"

// MockTOTPService implements domain.TOTPService interface for testing
type MockTOTPService struct {
	GenerateSecretFunc func(accountEmail string) (string, string, error)
	QRCodeFunc         func(provisioningURI string) (string, error)
	VerifyFunc         func(code, secret string) bool
}

// NewMockTOTPService creates a new MockTOTPService with default behaviors
func NewMockTOTPService() *MockTOTPService {
	return &MockTOTPService{}
}

// GenerateSecret produces a shared secret and provisioning URI
func (m *MockTOTPService) GenerateSecret(accountEmail string) (string, string, error) {
	if m.GenerateSecretFunc != nil {
		return m.GenerateSecretFunc(accountEmail)
	}
	// Default behavior: fixed secret
	return "JBSWY3DPEHPK3PXP", "otpauth://totp/test:" + accountEmail + "?secret=JBSWY3DPEHPK3PXP", nil
}

// QRCode renders a provisioning URI
func (m *MockTOTPService) QRCode(provisioningURI string) (string, error) {
	if m.QRCodeFunc != nil {
		return m.QRCodeFunc(provisioningURI)
	}
	// Default behavior: placeholder data URL
	return "data:image/png;base64,AAAA", nil
}

// Verify checks a code against a secret
func (m *MockTOTPService) Verify(code, secret string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(code, secret)
	}
	// Default behavior: a single well-known good code
	return code == "123456"
}

// Compile-time interface compliance verification
var _ domain.TOTPService = (*MockTOTPService)(nil)
