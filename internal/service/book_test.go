package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/book_library/internal/domain"
)

func TestBookService_SearchByTitle_CaseInsensitive(t *testing.T) {
	svc := &BookService{Repo: newTestRepo(t)}
	ctx := context.Background()

	mustCreateBook(t, svc.Repo, "Dune Messiah", "Frank Herbert")
	mustCreateBook(t, svc.Repo, "The Hobbit", "J.R.R. Tolkien")

	books, err := svc.SearchBooksByTitle(ctx, "dune")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune Messiah", books[0].Title)

	books, err = svc.SearchBooksByTitle(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookService_ByCategoryAndByID(t *testing.T) {
	svc := &BookService{Repo: newTestRepo(t)}
	ctx := context.Background()

	dune := mustCreateBook(t, svc.Repo, "Dune", "Frank Herbert")

	books, err := svc.GetBooksByCategory(ctx, "fiction")
	require.NoError(t, err)
	require.Len(t, books, 1)

	books, err = svc.GetBooksByCategory(ctx, "cooking")
	require.NoError(t, err)
	assert.Empty(t, books)

	dto, err := svc.GetBookByID(ctx, dune.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", dto.Title)

	_, err = svc.GetBookByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
