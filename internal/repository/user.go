package repository

import (
	"context"
	"errors"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users. Reads load the
// user's movies together with each movie's genre.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes the user and their movies, returning the movies that
	// were removed and the number of user rows deleted.
	Delete(ctx context.Context, id string) ([]models.Movie, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func withMovies(db *gorm.DB) *gorm.DB {
	return db.Preload("Movies", moviesByCreation).Preload("Movies.Genre")
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err, nil, apperrors.ErrEmailTaken)
	}
	if user.Movies == nil {
		user.Movies = []models.Movie{}
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := withMovies(r.db.WithContext(ctx)).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, apperrors.ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := withMovies(r.db.WithContext(ctx)).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := withMovies(r.db.WithContext(ctx)).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, nil, apperrors.ErrEmailTaken)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) ([]models.Movie, int64, error) {
	var (
		movies   []models.Movie
		affected int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Find(&movies).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Movie{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return movies, affected, nil
}
