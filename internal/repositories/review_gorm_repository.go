package repositories

import (
	"context"
	"fmt"

	"moviedb/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

func (r *GORMReviewRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("reviews.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = reviews.user_id")
}

// GetByMovieID returns the reviews of a movie in insertion order.
// A movie without reviews yields an empty slice.
func (r *GORMReviewRepository) GetByMovieID(ctx context.Context, movieID string) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.withAuthor(ctx).
		Where("reviews.movie_id = ?", movieID).
		Order("reviews.created_at ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for movie %s: %w", movieID, translateError(err))
	}
	return reviews, nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.withAuthor(ctx).Where("reviews.id = ?", id).Take(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, translateError(err))
	}
	return &review, nil
}

// Exists reports whether userID has already reviewed movieID.
func (r *GORMReviewRepository) Exists(ctx context.Context, movieID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up review: %w", translateError(err))
	}
	return count > 0, nil
}

// Create inserts a review. A second review for the same movie and user yields ErrDuplicateKey.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", translateError(err))
	}
	return nil
}

// Delete permanently removes a review.
func (r *GORMReviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
