package services

import (
	"context"
	"fmt"
	"log"

	"github.com/you/authsvc/domain"
)

// AuthServiceImpl implements domain.AuthService. This is where the login
// state machine lives:
//
//	Anonymous -> PasswordVerified -> FullyAuthenticated          (no 2FA)
//	Anonymous -> PasswordVerified -> AwaitingSecondFactor        (2FA on)
//	AwaitingSecondFactor -> FullyAuthenticated                   (login-2fa)
//
// AwaitingSecondFactor is not held server-side; it is reported to the
// client as RequiresTwoFactor and the client resubmits full credentials
// plus a code in a single login-2fa call.
type AuthServiceImpl struct {
	userRepo      domain.UserRepository
	credentialSvc domain.CredentialValidator
	passwordSvc   domain.PasswordService
	tokenSvc      domain.TokenService
	totpSvc       domain.TOTPService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	credentialSvc domain.CredentialValidator,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	totpSvc domain.TOTPService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		credentialSvc: credentialSvc,
		passwordSvc:   passwordSvc,
		tokenSvc:      tokenSvc,
		totpSvc:       totpSvc,
	}
}

// Register implements domain.AuthService. A fresh account has no second
// factor, so the minted token satisfies the 2FA gate.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name string) (*domain.AuthResult, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("LAST_LOGIN_UPDATE_FAILED: user_id=%s error=%v", user.ID, err)
	}

	accessToken, err := s.tokenSvc.Generate(user.ID, user.Email, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// Login implements domain.AuthService. When the account has 2FA enabled
// the password check alone yields no token: the result only signals that
// a second factor is required.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.credentialSvc.Validate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if user.TwoFactorEnabled {
		return &domain.AuthResult{
			RequiresTwoFactor: true,
		}, nil
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("LAST_LOGIN_UPDATE_FAILED: user_id=%s error=%v", user.ID, err)
	}

	accessToken, err := s.tokenSvc.Generate(user.ID, user.Email, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// LoginWithTwoFactor implements domain.AuthService. Completes the
// AwaitingSecondFactor step: full credentials are re-validated, then the
// TOTP code is checked against the account's active secret.
func (s *AuthServiceImpl) LoginWithTwoFactor(ctx context.Context, email, password, code string) (*domain.AuthResult, error) {
	user, err := s.credentialSvc.Validate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !user.TwoFactorEnabled {
		return nil, domain.ErrTwoFactorNotEnabled
	}

	if user.TwoFactorSecret == "" {
		return nil, domain.ErrTwoFactorMisconfigured
	}

	if !s.totpSvc.Verify(code, user.TwoFactorSecret) {
		return nil, domain.ErrTwoFactorCodeInvalid
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("LAST_LOGIN_UPDATE_FAILED: user_id=%s error=%v", user.ID, err)
	}

	accessToken, err := s.tokenSvc.Generate(user.ID, user.Email, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
