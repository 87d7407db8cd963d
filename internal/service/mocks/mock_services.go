// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/models"
)

// MockUserService is a mock implementation of UserServicer.
type MockUserService struct {
	CreateOrFetchFunc func(ctx context.Context, req *models.CreateUserRequest) (*models.User, bool, error)
	GetUserFunc       func(ctx context.Context, id string) (*models.User, error)
	GetAllUsersFunc   func(ctx context.Context) ([]models.User, error)
	UpdateUserFunc    func(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUserFunc    func(ctx context.Context, id string) error
}

func (m *MockUserService) CreateOrFetch(ctx context.Context, req *models.CreateUserRequest) (*models.User, bool, error) {
	if m.CreateOrFetchFunc != nil {
		return m.CreateOrFetchFunc(ctx, req)
	}
	return nil, false, nil
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	if m.GetAllUsersFunc != nil {
		return m.GetAllUsersFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

// MockMovieService is a mock implementation of MovieServicer.
type MockMovieService struct {
	CreateMovieFunc func(ctx context.Context, userID string, input models.MovieInput, image imagehost.Source) (*models.Movie, error)
	UpdateMovieFunc func(ctx context.Context, id string, input models.MovieInput, image imagehost.Source) (*models.Movie, error)
	GetMovieFunc    func(ctx context.Context, id string) (*models.Movie, error)
	ListMoviesFunc  func(ctx context.Context, page int) (*models.MoviePage, error)
	DeleteMovieFunc func(ctx context.Context, id string) error
}

func (m *MockMovieService) CreateMovie(ctx context.Context, userID string, input models.MovieInput, image imagehost.Source) (*models.Movie, error) {
	if m.CreateMovieFunc != nil {
		return m.CreateMovieFunc(ctx, userID, input, image)
	}
	return nil, nil
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id string, input models.MovieInput, image imagehost.Source) (*models.Movie, error) {
	if m.UpdateMovieFunc != nil {
		return m.UpdateMovieFunc(ctx, id, input, image)
	}
	return nil, nil
}

func (m *MockMovieService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	if m.GetMovieFunc != nil {
		return m.GetMovieFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMovieService) ListMovies(ctx context.Context, page int) (*models.MoviePage, error) {
	if m.ListMoviesFunc != nil {
		return m.ListMoviesFunc(ctx, page)
	}
	return nil, nil
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id string) error {
	if m.DeleteMovieFunc != nil {
		return m.DeleteMovieFunc(ctx, id)
	}
	return nil
}

// MockGenreService is a mock implementation of GenreServicer.
type MockGenreService struct {
	CreateGenreFunc              func(ctx context.Context, name string) (*models.Genre, error)
	ListMoviesByGenreAndUserFunc func(ctx context.Context, genreName, userID string, page int) (*models.MoviePage, error)
	ListGenresForUserFunc        func(ctx context.Context, userID string) ([]models.Genre, error)
	RenameGenreFunc              func(ctx context.Context, id, name string) (*models.Genre, error)
	DeleteGenreFunc              func(ctx context.Context, id string) error
}

func (m *MockGenreService) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	if m.CreateGenreFunc != nil {
		return m.CreateGenreFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockGenreService) ListMoviesByGenreAndUser(ctx context.Context, genreName, userID string, page int) (*models.MoviePage, error) {
	if m.ListMoviesByGenreAndUserFunc != nil {
		return m.ListMoviesByGenreAndUserFunc(ctx, genreName, userID, page)
	}
	return nil, nil
}

func (m *MockGenreService) ListGenresForUser(ctx context.Context, userID string) ([]models.Genre, error) {
	if m.ListGenresForUserFunc != nil {
		return m.ListGenresForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockGenreService) RenameGenre(ctx context.Context, id, name string) (*models.Genre, error) {
	if m.RenameGenreFunc != nil {
		return m.RenameGenreFunc(ctx, id, name)
	}
	return nil, nil
}

func (m *MockGenreService) DeleteGenre(ctx context.Context, id string) error {
	if m.DeleteGenreFunc != nil {
		return m.DeleteGenreFunc(ctx, id)
	}
	return nil
}
