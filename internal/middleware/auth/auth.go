package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/service"
	"github.com/Skotchmaster/book_library/internal/tokens"
)

const usernameKey = "username"

// Middleware resolves the caller from a Bearer access token. Admin
// rights are re-checked against the store on every privileged request;
// the decision is never cached.
type Middleware struct {
	JWTSecret []byte
	Admin     *service.AdminService
}

func BearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func Username(c echo.Context) string {
	if v, ok := c.Get(usernameKey).(string); ok {
		return v
	}
	return ""
}

func (m *Middleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := BearerToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(usernameKey, claims.Subject)
		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := BearerToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		ctx := c.Request().Context()
		if _, err := m.Admin.RequireAdmin(ctx, claims.Subject); err != nil {
			logging.FromContext(ctx).Warn("admin_gate_denied", "subject", claims.Subject)
			return echo.NewHTTPError(http.StatusForbidden, "administrator rights required")
		}

		c.Set(usernameKey, claims.Subject)
		return next(c)
	}
}
