package services_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"moviedb/internal/config"
	"moviedb/internal/database"
	"moviedb/internal/models"
	"moviedb/internal/repositories"
	"moviedb/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestMain silences service logging for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(event models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e models.Event) bool { return e.Type == eventType })
}

// stack wires real services over a private in-memory SQLite database.
type stack struct {
	auth     *services.AuthService
	genres   *services.GenreService
	reviews  *services.ReviewService
	movies   *services.MovieService
	userRepo *repositories.GORMUserRepository
	genreID  string
}

func newStack(t *testing.T, events services.EventPublisher) *stack {
	t.Helper()
	db, err := database.Open(config.Config{
		DatabaseDriver: "sqlite",
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBLogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	genreRepo := repositories.NewGORMGenreRepository(db)
	require.NoError(t, database.SeedGenres(context.Background(), genreRepo, []string{"Science Fiction", "Drama"}))
	genres, err := genreRepo.GetAll(context.Background())
	require.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	reviews := services.NewReviewService(repositories.NewGORMReviewRepository(db), events)
	return &stack{
		auth:     services.NewAuthService(userRepo, "test_jwt_secret", time.Hour, bcrypt.MinCost),
		genres:   services.NewGenreService(genreRepo),
		reviews:  reviews,
		movies:   services.NewMovieService(repositories.NewGORMMovieRepository(db), reviews, events),
		userRepo: userRepo,
		genreID:  genres[1].ID, // "Science Fiction"
	}
}

func (s *stack) user(t *testing.T, name string) string {
	t.Helper()
	u, err := s.auth.Register(context.Background(), name, "secret")
	require.NoError(t, err)
	return u.ID
}

func (s *stack) movie(t *testing.T, title, creatorID string) string {
	t.Helper()
	m, err := s.movies.AddMovie(context.Background(), title, s.genreID, "A fine movie", 2021, creatorID)
	require.NoError(t, err)
	return m.ID
}

func (s *stack) rate(t *testing.T, movieID, userID string, rating int) string {
	t.Helper()
	r, err := s.reviews.AddRating(context.Background(), movieID, rating, "Worth it", userID)
	require.NoError(t, err)
	return r.ID
}
