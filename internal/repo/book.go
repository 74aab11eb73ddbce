package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/book_library/internal/domain"
	"github.com/Skotchmaster/book_library/internal/models"
)

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) ListBooksByCategory(ctx context.Context, category string) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Where("category = ?", category).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooksByTitle is a case-insensitive substring match. LOWER/LIKE
// works on both postgres and the sqlite test driver.
func (r *GormRepo) SearchBooksByTitle(ctx context.Context, title string) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?)", "%"+title+"%").
		Order("id ASC").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) SaveBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBook(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
