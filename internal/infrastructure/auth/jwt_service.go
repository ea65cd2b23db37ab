package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/authsvc/domain"
)

// JWTServiceImpl implements domain.TokenService. Tokens are stateless
// bearer credentials: no revocation list exists, expiry is enforced at
// validation time only.
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	tokenTTL  time.Duration
}

// NewJWTService creates a new JWT service. The signing key is injected
// here at construction; nothing reads it from process-wide state.
func NewJWTService(secretKey string, issuer string, ttl time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		tokenTTL:  ttl,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Generate implements domain.TokenService. twoFactorSatisfied records
// whether a second factor was verified (or the account has none); tokens
// minted mid-login-flow never exist, so a token either satisfies the gate
// or was issued for an account that later enabled 2FA.
func (j *JWTServiceImpl) Generate(userID, email string, twoFactorSatisfied bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":                  userID,
		"email":                email,
		"two_factor_satisfied": twoFactorSatisfied,
		"iss":                  j.issuer,
		"iat":                  now.Unix(),
		"exp":                  now.Add(j.tokenTTL).Unix(),
		"jti":                  j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService. The signing method is pinned
// to HMAC; tokens carrying any other algorithm are rejected outright.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	satisfied, _ := claims["two_factor_satisfied"].(bool)

	return &domain.TokenClaims{
		UserID:             userID,
		Email:              email,
		TwoFactorSatisfied: satisfied,
		IssuedAt:           int64(iat),
		ExpiresAt:          int64(exp),
	}, nil
}
