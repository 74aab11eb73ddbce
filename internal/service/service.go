package service

import (
	"context"

	"github.com/Skotchmaster/book_library/internal/models"
	"github.com/Skotchmaster/book_library/internal/transport"
)

const timeLayout = "2006-01-02T15:04:05"

// EventPublisher is satisfied by mykafka.Producer. Publishing is
// best-effort everywhere: a broker failure never fails the request.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// BookIndexer keeps the search index in sync with the catalog.
// Satisfied by es.BookIndex; may be nil when search is disabled.
type BookIndexer interface {
	IndexBook(ctx context.Context, book *models.Book) error
	RemoveBook(ctx context.Context, id uint) error
}

func userDto(u *models.User) transport.UserDto {
	return transport.UserDto{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Format(timeLayout),
	}
}

func bookDto(b *models.Book) transport.BookDto {
	return transport.BookDto{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		Description: b.Description,
		CoverURL:    b.CoverURL,
		ISBN:        b.ISBN,
	}
}

func favoriteDto(f *models.Favorite, b *models.Book) transport.FavoriteDto {
	dto := transport.FavoriteDto{
		ID:      f.ID,
		UserID:  f.UserID,
		BookID:  f.BookID,
		IsRead:  f.IsRead,
		AddedAt: f.AddedAt.Format(timeLayout),
	}
	if b != nil {
		dto.Book = bookDto(b)
	}
	return dto
}

func roleNames(u *models.User) []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
