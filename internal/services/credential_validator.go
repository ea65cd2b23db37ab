package services

import (
	"context"

	"github.com/you/authsvc/domain"
)

// CredentialValidatorImpl implements domain.CredentialValidator
type CredentialValidatorImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
}

// NewCredentialValidator creates a new credential validator
func NewCredentialValidator(userRepo domain.UserRepository, passwordSvc domain.PasswordService) domain.CredentialValidator {
	return &CredentialValidatorImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// Validate implements domain.CredentialValidator. An unknown email and a
// wrong password return the same error so responses cannot be used to
// enumerate accounts. No side effects on success; the caller decides
// whether the login is complete.
func (v *CredentialValidatorImpl) Validate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := v.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !v.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
