package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/middleware/auth"
	"github.com/Skotchmaster/book_library/internal/service"
	"github.com/Skotchmaster/book_library/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	resp, err := h.Svc.Register(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, transport.Success("user registered", resp))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	resp, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("login successful", resp))
}

// Refresh reads the refresh token from the Authorization header.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	raw := auth.BearerToken(c)
	if raw == "" {
		l.Warn("refresh_failed", "status", 401, "reason", "missing bearer token")
		return c.JSON(http.StatusUnauthorized, transport.Error("missing bearer token"))
	}

	resp, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("token refreshed", resp))
}
