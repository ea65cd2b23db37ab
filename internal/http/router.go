package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/internal/http/handlers"
	"github.com/you/authsvc/internal/http/middleware"
)

// protectedRoute is one row of the authenticated-route policy table.
// requireSecondFactor is the only authorization capability in the system:
// routes with it set reject tokens minted without a verified second
// factor. The 2FA setup/verify routes leave it unset because they are the
// flow that produces such tokens in the first place.
type protectedRoute struct {
	method              string
	path                string
	handler             gin.HandlerFunc
	requireSecondFactor bool
}

func BuildRouter(ah *handlers.AuthHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/login-2fa", ah.LoginWith2FA)

	routes := []protectedRoute{
		{method: "GET", path: "/auth/2fa/generate", handler: ah.Generate2FASecret},
		{method: "POST", path: "/auth/2fa/enable", handler: ah.Enable2FA},
		{method: "POST", path: "/auth/2fa/verify", handler: ah.Verify2FA},
		{method: "POST", path: "/auth/2fa/disable", handler: ah.Disable2FA, requireSecondFactor: true},
		{method: "GET", path: "/auth/profile", handler: ah.Profile, requireSecondFactor: true},
	}

	for _, route := range routes {
		chain := []gin.HandlerFunc{jwtmw.WithJWT()}
		if route.requireSecondFactor {
			chain = append(chain, jwtmw.WithTwoFactorGate())
		}
		chain = append(chain, route.handler)
		r.Handle(route.method, route.path, chain...)
	}

	return r
}
