package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/service/search"
	"github.com/Skotchmaster/book_library/internal/transport"
	"github.com/Skotchmaster/book_library/internal/util"
)

// SearchHTTP serves the fuzzy full-text search backed by
// elasticsearch; the plain title search on /api/books/search stays on
// the relational store.
type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, transport.Error("q query parameter is required"))
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, books, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Error("search failed"))
	}

	return c.JSON(http.StatusOK, transport.Success("search results", map[string]any{
		"total": total,
		"books": books,
	}))
}
