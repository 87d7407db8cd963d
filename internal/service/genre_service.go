package service

import (
	"context"
	"strings"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/repository"
	"github.com/petermazzocco/movie-catalog-api/models"
)

// GenreService handles business logic for genre operations. Genre names
// are stored and matched in lowercase.
type GenreService struct {
	genres repository.GenreRepository
	movies repository.MovieRepository
}

// NewGenreService creates a new GenreService.
func NewGenreService(genres repository.GenreRepository, movies repository.MovieRepository) *GenreService {
	return &GenreService{genres: genres, movies: movies}
}

func normalizeGenreName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", apperrors.ErrGenreNameRequired
	}
	return name, nil
}

// CreateGenre stores a new genre. Names must be unique.
func (s *GenreService) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	name, err := normalizeGenreName(name)
	if err != nil {
		return nil, err
	}

	existing, err := s.genres.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrGenreExists
	}

	genre := &models.Genre{Name: name}
	if err := s.genres.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

// ListMoviesByGenreAndUser returns one page of the user's movies in the
// named genre. A known genre without matching movies yields an empty page.
func (s *GenreService) ListMoviesByGenreAndUser(ctx context.Context, genreName, userID string, page int) (*models.MoviePage, error) {
	if page < 1 {
		page = 1
	}

	genre, err := s.genres.GetByName(ctx, strings.ToLower(strings.TrimSpace(genreName)))
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, apperrors.ErrGenreNotFound
	}

	movies, err := s.movies.ListByGenreAndUser(ctx, genre.ID, userID, models.Offset(page), models.PageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.movies.CountByGenreAndUser(ctx, genre.ID, userID)
	if err != nil {
		return nil, err
	}

	return &models.MoviePage{Movies: movies, Pagination: models.NewPagination(page, total)}, nil
}

// ListGenresForUser returns every genre with only userID's movies loaded.
func (s *GenreService) ListGenresForUser(ctx context.Context, userID string) ([]models.Genre, error) {
	genres, err := s.genres.ListWithUserMovies(ctx, userID)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	for i := range genres {
		if genres[i].Movies == nil {
			genres[i].Movies = []models.Movie{}
		}
	}
	return genres, nil
}

// RenameGenre changes a genre's name.
func (s *GenreService) RenameGenre(ctx context.Context, id, name string) (*models.Genre, error) {
	name, err := normalizeGenreName(name)
	if err != nil {
		return nil, err
	}

	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre.Name == name {
		return genre, nil
	}

	if err := s.genres.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	return s.genres.GetByID(ctx, id)
}

// DeleteGenre removes a genre that no movie references.
func (s *GenreService) DeleteGenre(ctx context.Context, id string) error {
	if _, err := s.genres.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.movies.CountByGenre(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrGenreHasMovies
	}

	affected, err := s.genres.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrGenreNotFound
	}
	return nil
}
