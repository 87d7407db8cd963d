package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/internal/repository"
	"github.com/petermazzocco/movie-catalog-api/models"
)

type fakeUploader struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
}

func (f *fakeUploader) Upload(ctx context.Context, src imagehost.Source) (*imagehost.Asset, error) {
	if src == nil {
		return nil, apperrors.ErrImageMissing
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("movieImage/upload-%d.png", len(f.uploads)+1)
	f.uploads = append(f.uploads, id)
	return &imagehost.Asset{PublicID: id, SecureURL: "https://cdn.example.com/" + id}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return nil
}

// failingMovieRepository fails every write.
type failingMovieRepository struct {
	repository.MovieRepository
}

func (failingMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	return apperrors.Internal(fmt.Errorf("insert failed"))
}

func (failingMovieRepository) Update(ctx context.Context, id string, patch models.MoviePatch) error {
	return apperrors.Internal(fmt.Errorf("update failed"))
}

func ptr[T any](v T) *T { return &v }

func fullInput(genreID string) models.MovieInput {
	return models.MovieInput{
		Title:       ptr("heat"),
		Year:        ptr(1995),
		Description: ptr("a heist"),
		Language:    ptr("en"),
		GenreID:     ptr(genreID),
	}
}
