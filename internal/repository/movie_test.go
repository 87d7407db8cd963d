package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/testutil"
	"github.com/petermazzocco/movie-catalog-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	genre := testutil.SeedGenre(t, db, "drama")

	movie := &models.Movie{
		Title:       "heat",
		Year:        1995,
		Description: "a heist",
		Language:    "en",
		Image:       models.ImageRef{PublicID: "movieImage/heat.jpg", SecureURL: "https://cdn.example.com/movieImage/heat.jpg"},
		GenreID:     genre.ID,
		UserID:      user.ID,
	}
	require.NoError(t, repo.Create(ctx, movie))

	got, err := repo.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 1995, got.Year)
	assert.Equal(t, "movieImage/heat.jpg", got.Image.PublicID)
	require.NotNil(t, got.Genre)
	assert.Equal(t, "drama", got.Genre.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrMovieNotFound)
}

func TestMovieRepository_CreateWithUnknownGenre(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)

	user := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	err := repo.Create(context.Background(), &models.Movie{
		Title: "heat", Year: 1995, Description: "d", Language: "en",
		GenreID: "missing", UserID: user.ID,
	})

	require.Error(t, err)
	assert.NotEqual(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestMovieRepository_ListAndCount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	genre := testutil.SeedGenre(t, db, "drama")
	for i := 0; i < 10; i++ {
		testutil.SeedMovie(t, db, fmt.Sprintf("movie-%d", i), user.ID, genre.ID)
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	first, err := repo.List(ctx, models.Offset(1), models.PageSize)
	require.NoError(t, err)
	assert.Len(t, first, 4)
	assert.NotNil(t, first[0].Genre)

	last, err := repo.List(ctx, models.Offset(3), models.PageSize)
	require.NoError(t, err)
	assert.Len(t, last, 2)

	beyond, err := repo.List(ctx, models.Offset(4), models.PageSize)
	require.NoError(t, err)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestMovieRepository_ByGenreAndUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	ada := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	bob := testutil.SeedUser(t, db, "Bob", "bob@example.com")
	drama := testutil.SeedGenre(t, db, "drama")
	comedy := testutil.SeedGenre(t, db, "comedy")
	for i := 0; i < 5; i++ {
		testutil.SeedMovie(t, db, fmt.Sprintf("ada-drama-%d", i), ada.ID, drama.ID)
	}
	testutil.SeedMovie(t, db, "bob-drama", bob.ID, drama.ID)
	testutil.SeedMovie(t, db, "ada-comedy", ada.ID, comedy.ID)

	count, err := repo.CountByGenreAndUser(ctx, drama.ID, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	page2, err := repo.ListByGenreAndUser(ctx, drama.ID, ada.ID, models.Offset(2), models.PageSize)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, ada.ID, page2[0].UserID)

	byGenre, err := repo.CountByGenre(ctx, drama.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), byGenre)
}

func TestMovieRepository_Update(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	genre := testutil.SeedGenre(t, db, "drama")
	movie := testutil.SeedMovie(t, db, "heat", user.ID, genre.ID)

	require.NoError(t, repo.Update(ctx, movie.ID, models.MoviePatch{
		"year":             1995,
		"image_public_id":  "movieImage/new.png",
		"image_secure_url": "https://cdn.example.com/movieImage/new.png",
	}))

	got, err := repo.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 1995, got.Year)
	assert.Equal(t, "heat", got.Title)
	assert.Equal(t, "movieImage/new.png", got.Image.PublicID)

	assert.NoError(t, repo.Update(ctx, movie.ID, models.MoviePatch{}))
}

func TestMovieRepository_Delete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	genre := testutil.SeedGenre(t, db, "drama")
	movie := testutil.SeedMovie(t, db, "heat", user.ID, genre.ID)

	affected, err := repo.Delete(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
