package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/logging"
	"github.com/Skotchmaster/book_library/internal/models"
	"github.com/Skotchmaster/book_library/internal/repo"
	"github.com/Skotchmaster/book_library/internal/transport"
)

type FavoriteService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
}

func (s *FavoriteService) GetUserFavorites(ctx context.Context, userID uint) ([]transport.FavoriteDto, error) {
	favs, err := s.Repo.ListFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]transport.FavoriteDto, 0, len(favs))
	for i := range favs {
		book, err := s.Repo.GetBook(ctx, favs[i].BookID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		dtos = append(dtos, favoriteDto(&favs[i], book))
	}
	return dtos, nil
}

// AddFavorite rejects a duplicate (user, book) pair with ErrConflict;
// the store never holds more than one row per pair.
func (s *FavoriteService) AddFavorite(ctx context.Context, req transport.AddFavoriteRequest) (*transport.FavoriteDto, error) {
	l := logging.FromContext(ctx).With("svc", "favorite.add", "user_id", req.UserID, "book_id", req.BookID)

	if _, err := s.Repo.GetFavoriteByUserAndBook(ctx, req.UserID, req.BookID); err == nil {
		l.Warn("favorite_conflict")
		return nil, fmt.Errorf("book is already a favorite: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := s.Repo.GetUserByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	book, err := s.Repo.GetBook(ctx, req.BookID)
	if err != nil {
		return nil, fmt.Errorf("book: %w", err)
	}

	fav := models.Favorite{UserID: req.UserID, BookID: req.BookID}
	if err := s.Repo.CreateFavorite(ctx, &fav); err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(req.UserID), map[string]any{
		"type":    "favorite_added",
		"user_id": req.UserID,
		"book_id": req.BookID,
	})

	l.Info("favorite_added", "favorite_id", fav.ID)
	dto := favoriteDto(&fav, book)
	return &dto, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "favorite.remove", "favorite_id", id)

	if err := s.Repo.DeleteFavorite(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, fmt.Sprint(id), map[string]any{
		"type":        "favorite_removed",
		"favorite_id": id,
	})

	l.Info("favorite_removed")
	return nil
}

// ToggleRead is an idempotent set of the isRead flag.
func (s *FavoriteService) ToggleRead(ctx context.Context, id uint, isRead bool) (*transport.FavoriteDto, error) {
	fav, err := s.Repo.GetFavorite(ctx, id)
	if err != nil {
		return nil, err
	}

	fav.IsRead = isRead
	if err := s.Repo.SaveFavorite(ctx, fav); err != nil {
		return nil, err
	}

	book, err := s.Repo.GetBook(ctx, fav.BookID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	dto := favoriteDto(fav, book)
	return &dto, nil
}

// CheckFavorite is an existence probe, not a failure path: an absent
// pair comes back as ErrNotFound and the handler turns it into a soft
// "not favorited" envelope.
func (s *FavoriteService) CheckFavorite(ctx context.Context, userID, bookID uint) (*transport.FavoriteDto, error) {
	fav, err := s.Repo.GetFavoriteByUserAndBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	book, err := s.Repo.GetBook(ctx, fav.BookID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	dto := favoriteDto(fav, book)
	return &dto, nil
}

func (s *FavoriteService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "favorite_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", "favorite_events", "error", err)
	}
}
