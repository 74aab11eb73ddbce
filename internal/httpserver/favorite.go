package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/service"
	"github.com/Skotchmaster/book_library/internal/transport"
)

type FavoriteHTTP struct {
	Svc *service.FavoriteService
}

func (h *FavoriteHTTP) GetUserFavorites(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.list")

	userID, err := parseUintParam(c, "userId")
	if err != nil {
		l.Warn("list_favorites_failed", "status", 400, "reason", "userId not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("userId must be a number"))
	}

	favs, err := h.Svc.GetUserFavorites(ctx, userID)
	if err != nil {
		l.Error("list_favorites_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("favorites retrieved", favs))
}

// AddFavorite reports a duplicate pair as a soft conflict, not a
// failure status.
func (h *FavoriteHTTP) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.add")

	var req transport.AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_favorite_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	fav, err := h.Svc.AddFavorite(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return respondSoft(c, err)
		}
		l.Error("add_favorite_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("added to favorites", fav))
}

func (h *FavoriteHTTP) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.remove")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("remove_favorite_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	if err := h.Svc.RemoveFavorite(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return respondSoft(c, errors.New("favorite not found"))
		}
		l.Error("remove_favorite_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("favorite removed", nil))
}

func (h *FavoriteHTTP) ToggleRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.toggle_read")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("toggle_read_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	var req transport.ToggleReadRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("toggle_read_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Error("invalid body"))
	}

	fav, err := h.Svc.ToggleRead(ctx, id, req.IsRead)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return respondSoft(c, errors.New("favorite not found"))
		}
		l.Error("toggle_read_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("read state updated", fav))
}

// CheckFavorite is an existence probe; a miss is a soft envelope.
func (h *FavoriteHTTP) CheckFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.check")

	userID, err := parseUintQuery(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.Error("userId must be a number"))
	}
	bookID, err := parseUintQuery(c, "bookId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, transport.Error("bookId must be a number"))
	}

	fav, err := h.Svc.CheckFavorite(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return respondSoft(c, errors.New("book is not a favorite"))
		}
		l.Error("check_favorite_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("book is a favorite", fav))
}
