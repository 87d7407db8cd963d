package service

import (
	"context"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/internal/repository"
	"github.com/petermazzocco/movie-catalog-api/models"
)

// MovieService handles business logic for movie operations.
type MovieService struct {
	movies repository.MovieRepository
	genres repository.GenreRepository
	users  repository.UserRepository
	images ImageUploader
}

// NewMovieService creates a new MovieService.
func NewMovieService(movies repository.MovieRepository, genres repository.GenreRepository, users repository.UserRepository, images ImageUploader) *MovieService {
	return &MovieService{
		movies: movies,
		genres: genres,
		users:  users,
		images: images,
	}
}

// CreateMovie uploads image and stores a movie owned by userID. The genre
// and user are checked before anything is uploaded; a failed insert
// removes the uploaded image again.
func (s *MovieService) CreateMovie(ctx context.Context, userID string, input models.MovieInput, image imagehost.Source) (*models.Movie, error) {
	if input.Title == nil || input.Year == nil || input.Description == nil || input.Language == nil || input.GenreID == nil {
		return nil, apperrors.ErrMovieFieldsRequired
	}
	if image == nil {
		return nil, apperrors.ErrImageMissing
	}

	genre, err := s.genres.GetByID(ctx, *input.GenreID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	asset, err := s.images.Upload(ctx, image)
	if err != nil {
		return nil, err
	}

	movie := &models.Movie{
		Title:       *input.Title,
		Year:        *input.Year,
		Description: *input.Description,
		Language:    *input.Language,
		Image:       models.ImageRef{PublicID: asset.PublicID, SecureURL: asset.SecureURL},
		GenreID:     genre.ID,
		UserID:      userID,
	}
	if err := s.movies.Create(ctx, movie); err != nil {
		removeImage(ctx, s.images, asset.PublicID)
		return nil, err
	}
	movie.Genre = genre
	return movie, nil
}

// UpdateMovie applies the provided fields and, when image is set, swaps
// the movie's image. Fields and image reference are written together.
func (s *MovieService) UpdateMovie(ctx context.Context, id string, input models.MovieInput, image imagehost.Source) (*models.Movie, error) {
	existing, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := models.MoviePatch{}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Language != nil {
		patch["language"] = *input.Language
	}
	if input.Year != nil {
		patch["year"] = *input.Year
	}
	if input.GenreID != nil {
		genre, err := s.genres.GetByID(ctx, *input.GenreID)
		if err != nil {
			return nil, err
		}
		patch["genre_id"] = genre.ID
	}

	var uploaded *imagehost.Asset
	if image != nil {
		uploaded, err = s.images.Upload(ctx, image)
		if err != nil {
			return nil, err
		}
		patch["image_public_id"] = uploaded.PublicID
		patch["image_secure_url"] = uploaded.SecureURL
	}

	if err := s.movies.Update(ctx, id, patch); err != nil {
		if uploaded != nil {
			removeImage(ctx, s.images, uploaded.PublicID)
		}
		return nil, err
	}
	if uploaded != nil && existing.Image.PublicID != uploaded.PublicID {
		removeImage(ctx, s.images, existing.Image.PublicID)
	}

	return s.movies.GetByID(ctx, id)
}

// GetMovie retrieves a movie with its genre.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

// ListMovies returns one page of movies in creation order.
func (s *MovieService) ListMovies(ctx context.Context, page int) (*models.MoviePage, error) {
	if page < 1 {
		page = 1
	}

	movies, err := s.movies.List(ctx, models.Offset(page), models.PageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.movies.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.MoviePage{Movies: movies, Pagination: models.NewPagination(page, total)}, nil
}

// DeleteMovie removes a movie and then its hosted image.
func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.movies.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrMovieNotFound
	}

	removeImage(ctx, s.images, movie.Image.PublicID)
	return nil
}
