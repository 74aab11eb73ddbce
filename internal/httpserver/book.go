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

type BookHTTP struct {
	Svc *service.BookService
}

func (h *BookHTTP) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.list")

	books, err := h.Svc.GetAllBooks(ctx)
	if err != nil {
		l.Error("list_books_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("books retrieved", books))
}

func (h *BookHTTP) GetBooksByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.by_category")

	books, err := h.Svc.GetBooksByCategory(ctx, c.Param("category"))
	if err != nil {
		l.Error("list_books_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("books retrieved", books))
}

func (h *BookHTTP) SearchBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.search")

	title := c.QueryParam("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, transport.Error("title query parameter is required"))
	}

	books, err := h.Svc.SearchBooksByTitle(ctx, title)
	if err != nil {
		l.Error("search_books_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("books found", books))
}

// GetBook answers a soft envelope on a miss: 200 with success=false.
func (h *BookHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get")

	id, err := parseUintParam(c, "id")
	if err != nil {
		l.Warn("get_book_failed", "status", 400, "reason", "id not a number")
		return c.JSON(http.StatusBadRequest, transport.Error("id must be a number"))
	}

	book, err := h.Svc.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return respondSoft(c, errors.New("book not found"))
		}
		l.Error("get_book_failed", "status", 500, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.Success("book found", book))
}
