package repositories

import (
	"context"

	"moviedb/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByMovieID(ctx context.Context, movieID string) ([]models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Exists(ctx context.Context, movieID, userID string) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
}
