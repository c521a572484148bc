package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/service"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// UserIDKey is the context key under which the authenticated user's id is
// stored for downstream handlers.
const UserIDKey = "user_id"

// Auth returns an Echo middleware that extracts the bearer token from the
// Authorization header and runs it through the session authority's
// CheckAccess. On success the token's user id is injected into the
// request context; handlers read it via middleware.UserID(c).
//
// Status mapping: every denial (missing, revoked, malformed, expired or
// bad-signature token) becomes 401 so clients cannot probe which check
// failed; a revocation-store failure becomes 503 because the request
// could not be decided at all.
func Auth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token, please login"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			uid, err := auth.CheckAccess(c.Request().Context(), raw)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrNoToken):
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token, please login"})
				case errors.Is(err, service.ErrTokenRevoked):
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token revoked, please login"})
				case errors.Is(err, utils.ErrTokenMalformed), errors.Is(err, utils.ErrTokenNotValid):
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token, please login"})
				default:
					return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "authorization unavailable"})
				}
			}

			c.Set(UserIDKey, uid)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user's id stored by Auth. The second
// return value is false when the middleware did not run on this route.
func UserID(c echo.Context) (uint64, bool) {
	uid, ok := c.Get(UserIDKey).(uint64)
	return uid, ok
}
