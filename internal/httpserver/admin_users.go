package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/service"
	"github.com/Skotchmaster/book_library/internal/transport"
)

// AdminHTTP handlers run behind the admin-gate middleware; by the time
// a request lands here the caller has already been verified.
type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		l.Error("list_users_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("users retrieved", users))
}

func (h *AdminHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_user")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("get_user_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("user retrieved", user))
}

func (h *AdminHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	user, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, transport.Success("user created", user))
}

func (h *AdminHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_user")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("update_user_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	user, err := h.Svc.UpdateUser(ctx, id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("user updated", user))
}

func (h *AdminHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_user")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("delete_user_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("user deleted", nil))
}
