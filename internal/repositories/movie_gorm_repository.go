package repositories

import (
	"context"
	"errors"
	"fmt"

	"moviedb/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMovieRepository is a GORM implementation of MovieRepository.
type GORMMovieRepository struct {
	db *gorm.DB
}

// NewGORMMovieRepository creates a new instance of GORMMovieRepository.
func NewGORMMovieRepository(db *gorm.DB) *GORMMovieRepository {
	return &GORMMovieRepository{
		db: db,
	}
}

func (r *GORMMovieRepository) withGenre(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Select("movies.*, genres.name AS genre_name").
		Joins("JOIN genres ON genres.id = movies.genre_id")
}

// GetAll retrieves all movies ordered by title.
func (r *GORMMovieRepository) GetAll(ctx context.Context) ([]models.Movie, error) {
	movies := []models.Movie{}
	if err := r.withGenre(ctx).Order("movies.title ASC").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to get all movies: %w", translateError(err))
	}
	return movies, nil
}

// GetByID retrieves a single movie by its ID.
func (r *GORMMovieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.withGenre(ctx).Where("movies.id = ?", id).Take(&movie).Error; err != nil {
		return nil, fmt.Errorf("failed to get movie by ID %s: %w", id, translateError(err))
	}
	return &movie, nil
}

// Create inserts a new movie. A taken title yields ErrDuplicateKey.
func (r *GORMMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if movie.ID == "" {
		movie.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return fmt.Errorf("failed to create movie: %w", translateError(err))
	}
	return nil
}

// Update overwrites the editable fields of an existing movie.
func (r *GORMMovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	res := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", movie.ID).
		Updates(map[string]interface{}{
			"title":       movie.Title,
			"genre_id":    movie.GenreID,
			"description": movie.Description,
			"year":        movie.Year,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update movie: %w", translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("movie with ID %s not found for update: %w", movie.ID, ErrNotFound)
	}
	return nil
}

// Delete permanently removes a movie together with its reviews.
func (r *GORMMovieRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Movie{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("movie with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", translateError(err))
	}
	return nil
}
