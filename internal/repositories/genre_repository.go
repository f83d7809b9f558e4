package repositories

import (
	"context"

	"moviedb/internal/models"
)

// GenreRepository defines the interface for genre data access.
type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
}
