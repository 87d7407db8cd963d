// Package repository implements the persistence gateway on top of gorm.
package repository

import (
	"errors"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the application taxonomy. notFound is
// returned for gorm.ErrRecordNotFound; conflict for duplicate keys.
func translate(err error, notFound, conflict *apperrors.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != nil:
		return conflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrInvalidReference
	default:
		return apperrors.Internal(err)
	}
}

// moviesByCreation orders movie rows for stable pagination.
func moviesByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("movies.created_at ASC").Order("movies.id ASC")
}
