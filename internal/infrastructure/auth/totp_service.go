package auth

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/you/authsvc/domain"
)

const (
	// totpPeriod is the industry-standard 30-second step.
	totpPeriod = 30
	// totpSkew accepts codes from the 2 steps either side of the current
	// one (roughly ±60 seconds of clock drift). Widening this weakens the
	// factor; narrowing it locks out users with slow clocks.
	totpSkew = 2
	// totpSecretSize is 20 bytes, 160 bits of entropy before base32.
	totpSecretSize = 20

	qrImageSize = 256
)

// TOTPServiceImpl implements domain.TOTPService using standard
// RFC 6238 construction: 6-digit decimal codes, SHA-1, 30-second steps.
type TOTPServiceImpl struct {
	issuer string
}

// NewTOTPService creates a new TOTP service. issuer is the name shown in
// authenticator apps next to the account email.
func NewTOTPService(issuer string) domain.TOTPService {
	return &TOTPServiceImpl{issuer: issuer}
}

// GenerateSecret implements domain.TOTPService. It returns a fresh random
// base32 shared secret and an otpauth:// provisioning URI embedding the
// issuer and the account email.
func (s *TOTPServiceImpl) GenerateSecret(accountEmail string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountEmail,
		SecretSize:  totpSecretSize,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// QRCode implements domain.TOTPService. It renders the provisioning URI
// as a scannable QR image, returned as a base64 PNG data URL.
func (s *TOTPServiceImpl) QRCode(provisioningURI string) (string, error) {
	key, err := otp.NewKeyFromURL(provisioningURI)
	if err != nil {
		return "", err
	}

	img, err := key.Image(qrImageSize, qrImageSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Verify implements domain.TOTPService. Malformed input is rejected
// before any cryptographic comparison; all failures collapse to false so
// callers cannot distinguish an expired code from a wrong one.
func (s *TOTPServiceImpl) Verify(code, secret string) bool {
	return s.verifyAt(code, secret, time.Now().UTC())
}

// verifyAt checks code against secret at a fixed instant. Split out so
// tests can probe the acceptance window step by step.
func (s *TOTPServiceImpl) verifyAt(code, secret string, at time.Time) bool {
	if !isSixDigits(code) {
		return false
	}

	valid, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
