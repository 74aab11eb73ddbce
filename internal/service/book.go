package service

import (
	"context"

	"github.com/Skotchmaster/book_library/internal/models"
	"github.com/Skotchmaster/book_library/internal/repo"
	"github.com/Skotchmaster/book_library/internal/transport"
)

type BookService struct {
	Repo *repo.GormRepo
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]transport.BookDto, error) {
	books, err := s.Repo.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return bookDtos(books), nil
}

func (s *BookService) GetBooksByCategory(ctx context.Context, category string) ([]transport.BookDto, error) {
	books, err := s.Repo.ListBooksByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return bookDtos(books), nil
}

func (s *BookService) SearchBooksByTitle(ctx context.Context, title string) ([]transport.BookDto, error) {
	books, err := s.Repo.SearchBooksByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return bookDtos(books), nil
}

func (s *BookService) GetBookByID(ctx context.Context, id uint) (*transport.BookDto, error) {
	book, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := bookDto(book)
	return &dto, nil
}

func bookDtos(books []models.Book) []transport.BookDto {
	dtos := make([]transport.BookDto, 0, len(books))
	for i := range books {
		dtos = append(dtos, bookDto(&books[i]))
	}
	return dtos
}
