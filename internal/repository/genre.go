package repository

import (
	"context"
	"errors"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/models"

	"gorm.io/gorm"
)

// GenreRepository defines persistence operations for genres.
type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	GetByID(ctx context.Context, id string) (*models.Genre, error)
	// GetByName returns nil, nil when no genre has the name.
	GetByName(ctx context.Context, name string) (*models.Genre, error)
	// ListWithUserMovies returns every genre with only the movies owned by
	// userID loaded.
	ListWithUserMovies(ctx context.Context, userID string) ([]models.Genre, error)
	Rename(ctx context.Context, id, name string) error
	// Delete removes the genre, returning the number of rows deleted.
	Delete(ctx context.Context, id string) (int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return translate(err, nil, apperrors.ErrGenreExists)
	}
	return nil
}

func (r *genreRepository) GetByID(ctx context.Context, id string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, translate(err, apperrors.ErrGenreNotFound, nil)
	}
	return &genre, nil
}

func (r *genreRepository) GetByName(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal(err)
	}
	return &genre, nil
}

func (r *genreRepository) ListWithUserMovies(ctx context.Context, userID string) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.WithContext(ctx).
		Preload("Movies", func(db *gorm.DB) *gorm.DB {
			return moviesByCreation(db.Where("user_id = ?", userID))
		}).
		Order("name ASC").
		Find(&genres).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return genres, nil
}

func (r *genreRepository) Rename(ctx context.Context, id, name string) error {
	err := r.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", id).Update("name", name).Error
	return translate(err, nil, apperrors.ErrGenreExists)
}

func (r *genreRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Genre{})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return 0, apperrors.ErrGenreHasMovies
		}
		return 0, apperrors.Internal(res.Error)
	}
	return res.RowsAffected, nil
}
