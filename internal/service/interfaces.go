// Package service contains business logic for the application.
package service

import (
	"context"
	"log/slog"

	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/models"
)

// UserServicer defines the interface for user operations.
type UserServicer interface {
	// CreateOrFetch returns the user with req.Email, creating it when
	// absent. created reports whether a new user was stored.
	CreateOrFetch(ctx context.Context, req *models.CreateUserRequest) (user *models.User, created bool, err error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// MovieServicer defines the interface for movie operations.
type MovieServicer interface {
	CreateMovie(ctx context.Context, userID string, input models.MovieInput, image imagehost.Source) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id string, input models.MovieInput, image imagehost.Source) (*models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	ListMovies(ctx context.Context, page int) (*models.MoviePage, error)
	DeleteMovie(ctx context.Context, id string) error
}

// GenreServicer defines the interface for genre operations.
type GenreServicer interface {
	CreateGenre(ctx context.Context, name string) (*models.Genre, error)
	ListMoviesByGenreAndUser(ctx context.Context, genreName, userID string, page int) (*models.MoviePage, error)
	ListGenresForUser(ctx context.Context, userID string) ([]models.Genre, error)
	RenameGenre(ctx context.Context, id, name string) (*models.Genre, error)
	DeleteGenre(ctx context.Context, id string) error
}

// ImageUploader stores and removes hosted movie images.
type ImageUploader interface {
	Upload(ctx context.Context, src imagehost.Source) (*imagehost.Asset, error)
	Delete(ctx context.Context, publicID string) error
}

// Ensure concrete types implement interfaces
var (
	_ UserServicer  = (*UserService)(nil)
	_ MovieServicer = (*MovieService)(nil)
	_ GenreServicer = (*GenreService)(nil)
	_ ImageUploader = (*imagehost.Client)(nil)
)

// removeImage deletes a hosted image, logging instead of failing.
func removeImage(ctx context.Context, images ImageUploader, publicID string) {
	if publicID == "" {
		return
	}
	if err := images.Delete(context.WithoutCancel(ctx), publicID); err != nil {
		slog.WarnContext(ctx, "image cleanup failed",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()),
		)
	}
}
