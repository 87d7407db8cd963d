package repository

import (
	"context"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/models"

	"gorm.io/gorm"
)

// MovieRepository defines persistence operations for movies. Reads load
// the movie's genre.
type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	GetByID(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context, offset, limit int) ([]models.Movie, error)
	Count(ctx context.Context) (int64, error)
	ListByGenreAndUser(ctx context.Context, genreID, userID string, offset, limit int) ([]models.Movie, error)
	CountByGenreAndUser(ctx context.Context, genreID, userID string) (int64, error)
	CountByGenre(ctx context.Context, genreID string) (int64, error)
	// Update writes every column of patch in a single statement.
	Update(ctx context.Context, id string, patch models.MoviePatch) error
	// Delete removes the movie, returning the number of rows deleted.
	Delete(ctx context.Context, id string) (int64, error)
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Omit("Genre").Create(movie).Error; err != nil {
		return translate(err, nil, nil)
	}
	return nil
}

func (r *movieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).Preload("Genre").First(&movie, "id = ?", id).Error; err != nil {
		return nil, translate(err, apperrors.ErrMovieNotFound, nil)
	}
	return &movie, nil
}

func (r *movieRepository) List(ctx context.Context, offset, limit int) ([]models.Movie, error) {
	movies := []models.Movie{}
	err := moviesByCreation(r.db.WithContext(ctx)).
		Preload("Genre").
		Offset(offset).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return movies, nil
}

func (r *movieRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return 0, apperrors.Internal(err)
	}
	return total, nil
}

func (r *movieRepository) ListByGenreAndUser(ctx context.Context, genreID, userID string, offset, limit int) ([]models.Movie, error) {
	movies := []models.Movie{}
	err := moviesByCreation(r.db.WithContext(ctx)).
		Preload("Genre").
		Where("genre_id = ? AND user_id = ?", genreID, userID).
		Offset(offset).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return movies, nil
}

func (r *movieRepository) CountByGenreAndUser(ctx context.Context, genreID, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Where("genre_id = ? AND user_id = ?", genreID, userID).
		Count(&total).Error
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return total, nil
}

func (r *movieRepository) CountByGenre(ctx context.Context, genreID string) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("genre_id = ?", genreID).Count(&total).Error; err != nil {
		return 0, apperrors.Internal(err)
	}
	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, id string, patch models.MoviePatch) error {
	if len(patch) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Updates(map[string]any(patch)).Error
	return translate(err, nil, nil)
}

func (r *movieRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Movie{})
	if res.Error != nil {
		return 0, apperrors.Internal(res.Error)
	}
	return res.RowsAffected, nil
}
