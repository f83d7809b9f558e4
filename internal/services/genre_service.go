package services

import (
	"context"
	"log"

	"moviedb/internal/models"
	"moviedb/internal/repositories"
)

// GenreService exposes the genre reference data.
type GenreService struct {
	repo repositories.GenreRepository
}

// NewGenreService creates a new GenreService.
func NewGenreService(repo repositories.GenreRepository) *GenreService {
	return &GenreService{
		repo: repo,
	}
}

// ListGenres returns all genres sorted by name.
func (s *GenreService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Printf("Error listing genres: %v", err)
		return nil, newError(KindStore, "An error occurred while fetching genres. Please try again later.", err)
	}
	return genres, nil
}

// GenreIDs returns the set of known genre IDs used to validate movie input.
func (s *GenreService) GenreIDs(ctx context.Context) ([]string, error) {
	genres, err := s.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	return ids, nil
}
