package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"moviedb/internal/models"
	"moviedb/internal/repositories"
)

// ReviewLister supplies the reviews a movie is enriched with.
type ReviewLister interface {
	ReviewsForMovie(ctx context.Context, movieID string) ([]models.Review, error)
}

// MovieService handles business logic related to movies.
type MovieService struct {
	repo    repositories.MovieRepository
	reviews ReviewLister
	events  EventPublisher
}

// NewMovieService creates a new MovieService. events may be nil.
func NewMovieService(repo repositories.MovieRepository, reviews ReviewLister, events EventPublisher) *MovieService {
	return &MovieService{
		repo:    repo,
		reviews: reviews,
		events:  events,
	}
}

// enrich attaches reviews and their aggregate. A movie whose reviews
// cannot be loaded is shown without any rather than failing the caller.
func (s *MovieService) enrich(ctx context.Context, movie models.Movie) models.MovieDetails {
	details := models.MovieDetails{Movie: movie, Reviews: []models.Review{}}

	reviews, err := s.reviews.ReviewsForMovie(ctx, movie.ID)
	if err != nil {
		log.Printf("Error loading reviews for movie %s: %v", movie.ID, err)
		return details
	}
	details.Reviews = reviews
	details.ReviewCount, details.ReviewAverage = Summarize(reviews)
	return details
}

// ListMovies returns every movie sorted by title, with reviews.
func (s *MovieService) ListMovies(ctx context.Context) ([]models.MovieDetails, error) {
	movies, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Printf("Error listing movies: %v", err)
		return nil, newError(KindStore, "Could not load movies.", err)
	}

	list := make([]models.MovieDetails, 0, len(movies))
	for _, m := range movies {
		list = append(list, s.enrich(ctx, m))
	}
	return list, nil
}

// GetMovie returns a single movie with reviews.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*models.MovieDetails, error) {
	movie, err := s.getMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	details := s.enrich(ctx, *movie)
	return &details, nil
}

func (s *MovieService) getMovie(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindNotFound, "No movies found.", err)
	}
	if err != nil {
		log.Printf("Error getting movie %s: %v", id, err)
		return nil, newError(KindStore, "Could not load movie.", err)
	}
	return movie, nil
}

// AddMovie stores a new movie created by creatorID. The input must already be validated.
func (s *MovieService) AddMovie(ctx context.Context, title, genreID, description string, year int, creatorID string) (*models.Movie, error) {
	movie := &models.Movie{
		Title:       title,
		GenreID:     genreID,
		Description: description,
		Year:        year,
		CreatedBy:   creatorID,
	}
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, s.writeError("adding", title, err)
	}

	publishEvent(s.events, models.Event{Type: models.EventMovieCreated, MovieID: movie.ID, UserID: creatorID})
	return movie, nil
}

// EditMovie overwrites a movie's details. The input must already be validated.
func (s *MovieService) EditMovie(ctx context.Context, id, title, genreID, description string, year int) (*models.Movie, error) {
	movie := &models.Movie{
		ID:          id,
		Title:       title,
		GenreID:     genreID,
		Description: description,
		Year:        year,
	}
	if err := s.repo.Update(ctx, movie); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(KindNotFound, "No movies found.", err)
		}
		return nil, s.writeError("editing", title, err)
	}

	updated, err := s.getMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	publishEvent(s.events, models.Event{Type: models.EventMovieUpdated, MovieID: id})
	return updated, nil
}

func (s *MovieService) writeError(action, title string, err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return newError(KindDuplicateKey, fmt.Sprintf("Movie %s failed. Movie named '%s' already exists.", action, title), err)
	}
	log.Printf("Error %s movie %q: %v", action, title, err)
	return newError(KindStore, fmt.Sprintf("Movie %s failed. Please try again.", action), err)
}

// CanManage reports whether actor owns movie or is an admin.
func CanManage(movie *models.Movie, actor models.Actor) bool {
	return actor.IsAdmin || (actor.UserID != "" && movie.CreatedBy == actor.UserID)
}

// deletionAllowed decides whether actor may delete a movie carrying reviews.
// Once other people have reviewed a movie only an admin can remove it.
func deletionAllowed(reviews []models.Review, actor models.Actor) bool {
	switch len(reviews) {
	case 0:
		return true
	case 1:
		return actor.IsAdmin || reviews[0].UserID == actor.UserID
	default:
		return actor.IsAdmin
	}
}

// DeleteMovie permanently removes a movie and its reviews, subject to
// the review policy of deletionAllowed.
func (s *MovieService) DeleteMovie(ctx context.Context, id string, actor models.Actor) error {
	movie, err := s.getMovie(ctx, id)
	if err != nil {
		return err
	}

	reviews, err := s.reviews.ReviewsForMovie(ctx, movie.ID)
	if err != nil {
		log.Printf("Error counting reviews of movie %s: %v", id, err)
		return newError(KindStore, "Movie deletion failed. Please try again.", err)
	}
	if !deletionAllowed(reviews, actor) {
		return newError(KindForbidden, "Movie has reviews from other people. Only an admin can delete this.", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, "No movies found.", err)
		}
		log.Printf("Error deleting movie %s: %v", id, err)
		return newError(KindStore, "Movie deletion failed. Please try again.", err)
	}

	publishEvent(s.events, models.Event{Type: models.EventMovieDeleted, MovieID: id, UserID: actor.UserID})
	return nil
}

// SearchMovies filters the catalog by a case-insensitive title fragment
// and/or an exact genre ID. At least one of them is required.
func (s *MovieService) SearchMovies(ctx context.Context, title, genreID string) ([]models.MovieDetails, error) {
	title = strings.ToLower(strings.TrimSpace(title))
	genreID = strings.TrimSpace(genreID)
	if title == "" && genreID == "" {
		return nil, newError(KindInvalidInput, "Title or genre is required.", nil)
	}

	movies, err := s.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	results := []models.MovieDetails{}
	for _, m := range movies {
		if title != "" && !strings.Contains(strings.ToLower(m.Title), title) {
			continue
		}
		if genreID != "" && m.GenreID != genreID {
			continue
		}
		results = append(results, m)
	}
	return results, nil
}
