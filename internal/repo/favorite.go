package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/models"
)

func (r *GormRepo) GetFavorite(ctx context.Context, id uint) (*models.Favorite, error) {
	var fav models.Favorite
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &fav, nil
}

func (r *GormRepo) GetFavoriteByUserAndBook(ctx context.Context, userID, bookID uint) (*models.Favorite, error) {
	var fav models.Favorite
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &fav, nil
}

func (r *GormRepo) ListFavoritesByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favs []models.Favorite
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("added_at DESC").Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}

func (r *GormRepo) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) SaveFavorite(ctx context.Context, f *models.Favorite) error {
	return r.DB.WithContext(ctx).Save(f).Error
}

func (r *GormRepo) DeleteFavorite(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Favorite{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteFavoritesByUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Favorite{}).Error
}

func (r *GormRepo) DeleteFavoritesByBook(ctx context.Context, bookID uint) error {
	return r.DB.WithContext(ctx).Where("book_id = ?", bookID).Delete(&models.Favorite{}).Error
}
