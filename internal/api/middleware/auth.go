package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

// Authenticator resolves a bearer token to the caller's claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (ports.Claims, bool)
}

// Auth validates the bearer token against the session store and injects the
// caller's identity into context. A missing, malformed, unknown, or expired
// token is always 401 — never 403; role checks happen later in RBAC.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, ok := auth.Authenticate(c.Request().Context(), parts[1])
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("username", claims.Username)
			c.Set("role", string(claims.Role))

			return next(c)
		}
	}
}
