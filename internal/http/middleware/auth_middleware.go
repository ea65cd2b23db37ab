package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/domain"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxUserID             = "user_id"
	CtxUserEmail          = "user_email"
	CtxTwoFactorEnabled   = "two_factor_enabled"
	CtxTwoFactorSatisfied = "two_factor_satisfied"
)

// AuthMiddleware creates authentication middleware. It validates the
// bearer token and then loads the account so the second-factor gate sees
// the account's current 2FA flag, not the one at token-issue time.
func AuthMiddleware(tokenSvc domain.TokenService, userRepo domain.UserRepository) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case domain.ErrTokenInvalid, domain.ErrTokenMalformed:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token validation failed"})
			}
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserEmail, user.Email)
		c.Set(CtxTwoFactorEnabled, user.TwoFactorEnabled)
		c.Set(CtxTwoFactorSatisfied, claims.TwoFactorSatisfied)

		c.Next()
	})
}
