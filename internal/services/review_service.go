package services

import (
	"context"
	"errors"
	"log"

	"moviedb/internal/models"
	"moviedb/internal/repositories"
)

// ReviewService reads, adds and removes movie reviews.
type ReviewService struct {
	repo   repositories.ReviewRepository
	events EventPublisher
}

// NewReviewService creates a new ReviewService. events may be nil.
func NewReviewService(repo repositories.ReviewRepository, events EventPublisher) *ReviewService {
	return &ReviewService{
		repo:   repo,
		events: events,
	}
}

// ReviewsForMovie returns the reviews of a movie with their authors' usernames.
func (s *ReviewService) ReviewsForMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	reviews, err := s.repo.GetByMovieID(ctx, movieID)
	if err != nil {
		return nil, newError(KindStore, "Could not load reviews.", err)
	}
	return reviews, nil
}

// RatingByID returns a single review.
func (s *ReviewService) RatingByID(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindNotFound, "No rating found.", err)
	}
	if err != nil {
		return nil, newError(KindStore, "Could not load rating.", err)
	}
	return review, nil
}

// DeleteRating permanently removes a review. Only its author or an admin may do so.
func (s *ReviewService) DeleteRating(ctx context.Context, id string, actor models.Actor) error {
	review, err := s.RatingByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != actor.UserID && !actor.IsAdmin {
		return newError(KindForbidden, "You are not allowed to delete this review!", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, "No rating found.", err)
		}
		log.Printf("Error deleting review %s: %v", id, err)
		return newError(KindStore, "Rating deletion failed. Please try again.", err)
	}

	publishEvent(s.events, models.Event{Type: models.EventRatingDeleted, MovieID: review.MovieID, ReviewID: id, UserID: actor.UserID})
	return nil
}

// AddRating stores a review of movieID by userID. The input must already
// be validated. A user rates a movie at most once: the lookup gives the
// friendly error, the unique index on (movie_id, user_id) settles races.
func (s *ReviewService) AddRating(ctx context.Context, movieID string, rating int, comment, userID string) (*models.Review, error) {
	alreadyRated := newError(KindAlreadyRated, "User has already rated the movie.", nil)

	exists, err := s.repo.Exists(ctx, movieID, userID)
	if err != nil {
		log.Printf("Error checking existing review for movie %s: %v", movieID, err)
		return nil, newError(KindStore, "Movie rating failed. Please try again.", err)
	}
	if exists {
		return nil, alreadyRated
	}

	review := &models.Review{MovieID: movieID, UserID: userID, Rating: rating, Comment: comment}
	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, alreadyRated
		}
		log.Printf("Error creating review for movie %s: %v", movieID, err)
		return nil, newError(KindStore, "Movie rating failed. Please try again.", err)
	}

	publishEvent(s.events, models.Event{Type: models.EventRatingAdded, MovieID: movieID, ReviewID: review.ID, UserID: userID})
	return review, nil
}

// Summarize returns the number of reviews and the mean rating, nil when
// there are none.
func Summarize(reviews []models.Review) (int, *float64) {
	if len(reviews) == 0 {
		return 0, nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return len(reviews), &avg
}
