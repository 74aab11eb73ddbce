package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/hash"
	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/models"
	"github.com/Skotchmaster/book_library/internal/repo"
	"github.com/Skotchmaster/book_library/internal/transport"
)

type AdminService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
	Index    BookIndexer
}

// RequireAdmin fails closed: empty subject, unknown user and a false
// admin flag all map to ErrForbidden. It is re-run on every privileged
// call, never cached.
func (s *AdminService) RequireAdmin(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("missing caller identity: %w", domain.ErrForbidden)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown caller: %w", domain.ErrForbidden)
		}
		return nil, err
	}

	if !user.IsAdmin {
		return nil, fmt.Errorf("administrator rights required: %w", domain.ErrForbidden)
	}
	return user, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]transport.UserDto, error) {
	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]transport.UserDto, 0, len(users))
	for i := range users {
		dtos = append(dtos, userDto(&users[i]))
	}
	return dtos, nil
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (*transport.UserDto, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := userDto(user)
	return &dto, nil
}

func (s *AdminService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*transport.UserDto, error) {
	l := logging.FromContext(ctx).With("svc", "admin.create_user", "username", req.Username)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", domain.ErrValidation)
	}

	if _, err := s.Repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already in use: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		FullName:     req.Username,
		IsActive:     true,
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	l.Info("user_created", "user_id", user.ID)
	dto := userDto(&user)
	return &dto, nil
}

// UpdateUser overwrites only the fields the request actually carries.
// Username/email uniqueness is re-checked against other users; the
// target matching itself is allowed.
func (s *AdminService) UpdateUser(ctx context.Context, id uint, req transport.UpdateUserRequest) (*transport.UserDto, error) {
	l := logging.FromContext(ctx).With("svc", "admin.update_user", "user_id", id)

	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		existing, err := s.Repo.GetUserByUsername(ctx, req.Username)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("username already in use: %w", domain.ErrConflict)
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		user.Username = req.Username
	}
	if req.Email != "" {
		existing, err := s.Repo.GetUserByEmail(ctx, req.Email)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		pwHash, err := hash.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}
	if req.IsAdmin != nil {
		// NOTE: demoting the last admin is not guarded here; only
		// deletion checks the admin count.
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	l.Info("user_updated")
	dto := userDto(user)
	return &dto, nil
}

// DeleteUser refuses to remove the last remaining admin, then cascades
// the user's favorites before deleting the user itself.
func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "admin.delete_user", "user_id", id)

	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if user.IsAdmin {
		count, err := s.Repo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			l.Warn("delete_refused", "reason", "last admin")
			return domain.ErrLastAdmin
		}
	}

	if err := s.Repo.DeleteFavoritesByUser(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteUser(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, "user_events", fmt.Sprint(id), map[string]any{
		"type":    "user_deleted",
		"user_id": id,
	})

	l.Info("user_deleted")
	return nil
}

func (s *AdminService) CreateBook(ctx context.Context, req transport.CreateBookRequest) (*transport.BookDto, error) {
	l := logging.FromContext(ctx).With("svc", "admin.create_book", "title", req.Title)

	if req.Title == "" || req.Author == "" {
		return nil, fmt.Errorf("title and author are required: %w", domain.ErrValidation)
	}

	book := models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		ISBN:        req.ISBN,
	}
	if err := s.Repo.CreateBook(ctx, &book); err != nil {
		return nil, err
	}

	s.indexBook(ctx, &book)
	s.publish(ctx, "book_events", fmt.Sprint(book.ID), map[string]any{
		"type":    "book_created",
		"book_id": book.ID,
		"title":   book.Title,
	})

	l.Info("book_created", "book_id", book.ID)
	dto := bookDto(&book)
	return &dto, nil
}

func (s *AdminService) UpdateBook(ctx context.Context, id uint, req transport.UpdateBookRequest) (*transport.BookDto, error) {
	l := logging.FromContext(ctx).With("svc", "admin.update_book", "book_id", id)

	book, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		book.Title = req.Title
	}
	if req.Author != "" {
		book.Author = req.Author
	}
	if req.Category != "" {
		book.Category = req.Category
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.CoverURL != nil {
		book.CoverURL = *req.CoverURL
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}

	if err := s.Repo.SaveBook(ctx, book); err != nil {
		return nil, err
	}

	s.indexBook(ctx, book)
	s.publish(ctx, "book_events", fmt.Sprint(book.ID), map[string]any{
		"type":    "book_updated",
		"book_id": book.ID,
	})

	l.Info("book_updated")
	dto := bookDto(book)
	return &dto, nil
}

func (s *AdminService) DeleteBook(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "admin.delete_book", "book_id", id)

	if _, err := s.Repo.GetBook(ctx, id); err != nil {
		return err
	}

	if err := s.Repo.DeleteFavoritesByBook(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.RemoveBook(ctx, id); err != nil {
			logging.FromContext(ctx).Error("es_remove_error", "book_id", id, "error", err)
		}
	}
	s.publish(ctx, "book_events", fmt.Sprint(id), map[string]any{
		"type":    "book_deleted",
		"book_id": id,
	})

	l.Info("book_deleted")
	return nil
}

func (s *AdminService) indexBook(ctx context.Context, book *models.Book) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexBook(ctx, book); err != nil {
		logging.FromContext(ctx).Error("es_index_error", "book_id", book.ID, "error", err)
	}
}

func (s *AdminService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}
