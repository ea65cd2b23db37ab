package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/domain"
	"github.com/you/authsvc/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc      domain.AuthService
	twoFactorSvc domain.TwoFactorService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, twoFactorSvc domain.TwoFactorService) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		twoFactorSvc: twoFactorSvc,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginWith2FARequest represents the single-call password+code login
type LoginWith2FARequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totpCode" binding:"required,len=6"`
}

// TwoFactorCodeRequest carries a TOTP code for enable/disable/verify
type TwoFactorCodeRequest struct {
	TOTPCode string `json:"totpCode" binding:"required,len=6"`
}

func userPayload(user *domain.User) gin.H {
	return gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"name":             user.Name,
		"twoFactorEnabled": user.TwoFactorEnabled,
	}
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if err == domain.ErrUserAlreadyExists {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":        userPayload(result.User),
		"accessToken": result.AccessToken,
	})
}

// Login handles password-only login. Accounts with 2FA enabled get no
// token here, only the requiresTwoFactor signal.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	if result.RequiresTwoFactor {
		c.JSON(http.StatusOK, gin.H{
			"requiresTwoFactor": true,
			"message":           "Two-factor authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":              userPayload(result.User),
		"accessToken":       result.AccessToken,
		"requiresTwoFactor": false,
	})
}

// LoginWith2FA handles the combined password+TOTP login call
func (h *AuthHandlers) LoginWith2FA(c *gin.Context) {
	var req LoginWith2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.LoginWithTwoFactor(c.Request.Context(), req.Email, req.Password, req.TOTPCode)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrTwoFactorCodeInvalid:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
		case domain.ErrTwoFactorNotEnabled:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Two-factor authentication not enabled"})
		case domain.ErrTwoFactorMisconfigured:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Two-factor authentication misconfigured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        userPayload(result.User),
		"accessToken": result.AccessToken,
	})
}

// Generate2FASecret handles TOTP secret generation for the current user
func (h *AuthHandlers) Generate2FASecret(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	setup, err := h.twoFactorSvc.GenerateSecret(c.Request.Context(), userID)
	if err != nil {
		switch err {
		case domain.ErrTwoFactorAlreadyEnabled:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Two-factor authentication already enabled"})
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate two-factor secret"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"secret": setup.Secret,
		"qrCode": setup.QRCode,
	})
}

// Enable2FA confirms enrollment with a current code and returns the
// one-time-displayed backup codes
func (h *AuthHandlers) Enable2FA(c *gin.Context) {
	var req TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	backupCodes, err := h.twoFactorSvc.Enable(c.Request.Context(), userID, req.TOTPCode)
	if err != nil {
		switch err {
		case domain.ErrTwoFactorAlreadyEnabled:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Two-factor authentication already enabled"})
		case domain.ErrTwoFactorSetupNotStarted:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Generate a two-factor secret first"})
		case domain.ErrTwoFactorCodeInvalid:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable two-factor authentication"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Two-factor authentication enabled",
		"backupCodes": backupCodes,
	})
}

// Disable2FA turns off two-factor authentication after verifying a code
func (h *AuthHandlers) Disable2FA(c *gin.Context) {
	var req TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	if err := h.twoFactorSvc.Disable(c.Request.Context(), userID, req.TOTPCode); err != nil {
		switch err {
		case domain.ErrTwoFactorNotEnabled:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Two-factor authentication not enabled"})
		case domain.ErrTwoFactorCodeInvalid:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
		case domain.ErrTwoFactorMisconfigured:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Two-factor authentication misconfigured"})
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable two-factor authentication"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Two-factor authentication disabled",
	})
}

// Verify2FA checks a TOTP code for the current user without changing state
func (h *AuthHandlers) Verify2FA(c *gin.Context) {
	var req TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	if err := h.twoFactorSvc.Verify(c.Request.Context(), userID, req.TOTPCode); err != nil {
		switch err {
		case domain.ErrTwoFactorNotEnabled:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Two-factor authentication not configured"})
		case domain.ErrTwoFactorCodeInvalid:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "TOTP code verified",
		"valid":   true,
	})
}

// Profile handles getting the current user's profile
func (h *AuthHandlers) Profile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"name":             user.Name,
		"twoFactorEnabled": user.TwoFactorEnabled,
		"lastLoginAt":      user.LastLoginAt,
		"createdAt":        user.CreatedAt,
	})
}
