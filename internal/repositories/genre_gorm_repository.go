package repositories

import (
	"context"
	"fmt"

	"moviedb/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGenreRepository is a GORM implementation of GenreRepository.
type GORMGenreRepository struct {
	db *gorm.DB
}

// NewGORMGenreRepository creates a new instance of GORMGenreRepository.
func NewGORMGenreRepository(db *gorm.DB) *GORMGenreRepository {
	return &GORMGenreRepository{db: db}
}

// GetAll retrieves every genre ordered by name.
func (r *GORMGenreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	genres := []models.Genre{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to get all genres: %w", translateError(err))
	}
	return genres, nil
}

// Create inserts a genre.
func (r *GORMGenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if genre.ID == "" {
		genre.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return fmt.Errorf("failed to create genre %q: %w", genre.Name, translateError(err))
	}
	return nil
}
