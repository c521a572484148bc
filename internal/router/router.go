package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/service"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication and profile routes.
// Unauthenticated operations live under /v1/auth; the profile resource
// lives under /v1 behind the auth middleware, which validates the bearer
// token (revocation set first, then signature/expiry) and stores the
// user id in the request context.
//
// Logout is registered under /v1/auth rather than the protected group on
// purpose: it reads the Authorization header itself so that an expired
// token can still be logged out.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, p *handler.ProfileHandler, auth *service.AuthService) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	protected := e.Group("/v1")
	protected.Use(middleware.Auth(auth))
	protected.GET("/profile", p.Get)
	protected.PUT("/profile", p.Update)
	protected.DELETE("/profile", p.Delete)
}
