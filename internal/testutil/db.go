// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/petermazzocco/movie-catalog-api/internal/database"
	"github.com/petermazzocco/movie-catalog-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DiscardLogger drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a migrated in-memory SQLite database with foreign keys
// enforced. The pool is pinned to one connection because every new
// connection to :memory: is a separate, empty database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.GormConfig(DiscardLogger()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SeedUser inserts a user directly.
func SeedUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedGenre inserts a genre directly.
func SeedGenre(t *testing.T, db *gorm.DB, name string) *models.Genre {
	t.Helper()
	g := &models.Genre{Name: name}
	require.NoError(t, db.Create(g).Error)
	return g
}

// SeedMovie inserts a movie owned by userID in genreID.
func SeedMovie(t *testing.T, db *gorm.DB, title, userID, genreID string) *models.Movie {
	t.Helper()
	m := &models.Movie{
		Title:       title,
		Year:        2020,
		Description: "a movie",
		Language:    "en",
		Image:       models.ImageRef{PublicID: "movieImage/" + title, SecureURL: "https://cdn.example.com/movieImage/" + title},
		GenreID:     genreID,
		UserID:      userID,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
