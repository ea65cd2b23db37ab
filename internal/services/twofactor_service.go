package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/you/authsvc/domain"
)

const (
	backupCodeCount  = 10
	backupCodeLength = 8
)

const backupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TwoFactorServiceImpl implements domain.TwoFactorService. Per-account
// 2FA state lives entirely on the account record:
//
//	none            TwoFactorEnabled=false, TwoFactorSecret=""
//	pending(secret) TwoFactorEnabled=false, TwoFactorSecret set
//	active(secret)  TwoFactorEnabled=true,  TwoFactorSecret set
type TwoFactorServiceImpl struct {
	userRepo domain.UserRepository
	totpSvc  domain.TOTPService
}

// NewTwoFactorService creates a new two-factor service
func NewTwoFactorService(userRepo domain.UserRepository, totpSvc domain.TOTPService) domain.TwoFactorService {
	return &TwoFactorServiceImpl{
		userRepo: userRepo,
		totpSvc:  totpSvc,
	}
}

// GenerateSecret implements domain.TwoFactorService. Transitions
// none -> pending. Re-issuing while pending overwrites the prior secret,
// so an abandoned enrollment can simply be restarted.
func (s *TwoFactorServiceImpl) GenerateSecret(ctx context.Context, userID string) (*domain.TwoFactorSetup, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.TwoFactorEnabled {
		return nil, domain.ErrTwoFactorAlreadyEnabled
	}

	secret, provisioningURI, err := s.totpSvc.GenerateSecret(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	if err := s.userRepo.UpdateTwoFactorSecret(ctx, userID, secret); err != nil {
		return nil, fmt.Errorf("failed to store totp secret: %w", err)
	}

	qrCode, err := s.totpSvc.QRCode(provisioningURI)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	return &domain.TwoFactorSetup{
		Secret: secret,
		QRCode: qrCode,
	}, nil
}

// Enable implements domain.TwoFactorService. Transitions pending -> active
// once the caller proves possession of the secret with a current code.
// The returned backup codes are shown exactly once and are not persisted;
// they cannot be redeemed anywhere in this service.
func (s *TwoFactorServiceImpl) Enable(ctx context.Context, userID, code string) ([]string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.TwoFactorEnabled {
		return nil, domain.ErrTwoFactorAlreadyEnabled
	}

	if user.TwoFactorSecret == "" {
		return nil, domain.ErrTwoFactorSetupNotStarted
	}

	if !s.totpSvc.Verify(code, user.TwoFactorSecret) {
		return nil, domain.ErrTwoFactorCodeInvalid
	}

	if err := s.userRepo.EnableTwoFactor(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to enable two-factor: %w", err)
	}

	codes, err := generateBackupCodes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate backup codes: %w", err)
	}

	return codes, nil
}

// Disable implements domain.TwoFactorService. Transitions active -> none,
// clearing the stored secret so no code derived from it verifies again.
func (s *TwoFactorServiceImpl) Disable(ctx context.Context, userID, code string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.TwoFactorEnabled {
		return domain.ErrTwoFactorNotEnabled
	}

	if user.TwoFactorSecret == "" {
		return domain.ErrTwoFactorMisconfigured
	}

	if !s.totpSvc.Verify(code, user.TwoFactorSecret) {
		return domain.ErrTwoFactorCodeInvalid
	}

	if err := s.userRepo.DisableTwoFactor(ctx, userID); err != nil {
		return fmt.Errorf("failed to disable two-factor: %w", err)
	}

	return nil
}

// Verify implements domain.TwoFactorService. Pure check, no state
// transition. An unconfigured account is a hard precondition error,
// distinct from a merely wrong code.
func (s *TwoFactorServiceImpl) Verify(ctx context.Context, userID, code string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.TwoFactorEnabled || user.TwoFactorSecret == "" {
		return domain.ErrTwoFactorNotEnabled
	}

	if !s.totpSvc.Verify(code, user.TwoFactorSecret) {
		return domain.ErrTwoFactorCodeInvalid
	}

	return nil
}

// generateBackupCodes produces a batch of recovery tokens, unique within
// the batch, from crypto/rand.
func generateBackupCodes() ([]string, error) {
	codes := make([]string, 0, backupCodeCount)
	seen := make(map[string]bool, backupCodeCount)

	for len(codes) < backupCodeCount {
		code, err := generateBackupCode()
		if err != nil {
			return nil, err
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}

	return codes, nil
}

func generateBackupCode() (string, error) {
	chars := make([]byte, backupCodeLength)
	max := big.NewInt(int64(len(backupCodeAlphabet)))

	for i := range chars {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		chars[i] = backupCodeAlphabet[n.Int64()]
	}

	return string(chars), nil
}
