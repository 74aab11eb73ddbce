package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/transport"
)

// respondError maps the domain error taxonomy to HTTP statuses in one
// place. Unknown errors never leak their text to the client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, transport.Error(err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, transport.Error(err.Error()))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, transport.Error(err.Error()))
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrLastAdmin):
		return c.JSON(http.StatusBadRequest, transport.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, transport.Error("internal server error"))
	}
}

// respondSoft answers 200 with success=false for the endpoints whose
// misses are probes rather than failures (favorites, get-book-by-id).
func respondSoft(c echo.Context, err error) error {
	return c.JSON(http.StatusOK, transport.Error(err.Error()))
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func parseUintQuery(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.QueryParam(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
