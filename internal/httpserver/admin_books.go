package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/transport"
)

func (h *AdminHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_book")

	var req transport.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	book, err := h.Svc.CreateBook(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, transport.Success("book created", book))
}

func (h *AdminHTTP) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_book")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("update_book_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	var req transport.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	book, err := h.Svc.UpdateBook(ctx, id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("book updated", book))
}

func (h *AdminHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_book")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("delete_book_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	if err := h.Svc.DeleteBook(ctx, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("book deleted", nil))
}
