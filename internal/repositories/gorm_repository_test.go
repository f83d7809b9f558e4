package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"moviedb/internal/config"
	"moviedb/internal/database"
	"moviedb/internal/models"
	"moviedb/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the catalog schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Config{
		DatabaseDriver: "sqlite",
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBLogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	genres  *repositories.GORMGenreRepository
	users   *repositories.GORMUserRepository
	movies  *repositories.GORMMovieRepository
	reviews *repositories.GORMReviewRepository
	drama   models.Genre
	alice   models.User
	bob     models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()
	f := &fixture{
		genres:  repositories.NewGORMGenreRepository(db),
		users:   repositories.NewGORMUserRepository(db),
		movies:  repositories.NewGORMMovieRepository(db),
		reviews: repositories.NewGORMReviewRepository(db),
		drama:   models.Genre{Name: "Drama"},
		alice:   models.User{Username: "alice", Password: "hash"},
		bob:     models.User{Username: "bob", Password: "hash"},
	}
	require.NoError(t, f.genres.Create(ctx, &f.drama))
	require.NoError(t, f.users.Create(ctx, &f.alice))
	require.NoError(t, f.users.Create(ctx, &f.bob))
	return f
}

func (f *fixture) movie(t *testing.T, title string) models.Movie {
	t.Helper()
	m := models.Movie{Title: title, Description: "A movie", Year: 2001, GenreID: f.drama.ID, CreatedBy: f.alice.ID}
	require.NoError(t, f.movies.Create(context.Background(), &m))
	return m
}

func TestGORMGenreRepository_GetAllSortedByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.genres.Create(ctx, &models.Genre{Name: "Action"}))
	require.NoError(t, f.genres.Create(ctx, &models.Genre{Name: "Western"}))

	genres, err := f.genres.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, []string{"Action", "Drama", "Western"}, []string{genres[0].Name, genres[1].Name, genres[2].Name})
	assert.NotEmpty(t, genres[0].ID)
}

func TestGORMUserRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, got.ID)
	assert.False(t, got.IsAdmin)

	got, err = f.users.GetByID(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	_, err = f.users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = f.users.Create(ctx, &models.User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
}

func TestGORMMovieRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.movie(t, "Dune")
	require.NotEmpty(t, created.ID)

	got, err := f.movies.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Drama", got.GenreName)
	assert.Equal(t, f.alice.ID, got.CreatedBy)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = f.movies.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMMovieRepository_DuplicateTitle(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "Dune")

	dup := models.Movie{Title: "Dune", Description: "Again", Year: 1984, GenreID: f.drama.ID, CreatedBy: f.bob.ID}
	err := f.movies.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
}

func TestGORMMovieRepository_GetAllSortedByTitle(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "Zodiac")
	f.movie(t, "Alien")
	f.movie(t, "Memento")

	movies, err := f.movies.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, "Alien", movies[0].Title)
	assert.Equal(t, "Memento", movies[1].Title)
	assert.Equal(t, "Zodiac", movies[2].Title)
	for _, m := range movies {
		assert.Equal(t, "Drama", m.GenreName)
	}
}

func TestGORMMovieRepository_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.movie(t, "Alien")
	f.movie(t, "Aliens")

	m.Title = "Alien: Director's Cut"
	m.Year = 2003
	require.NoError(t, f.movies.Update(ctx, &m))

	got, err := f.movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alien: Director's Cut", got.Title)
	assert.Equal(t, 2003, got.Year)

	m.Title = "Aliens"
	assert.ErrorIs(t, f.movies.Update(ctx, &m), repositories.ErrDuplicateKey)

	missing := models.Movie{ID: uuid.NewString(), Title: "Ghost", Description: "None", Year: 2000, GenreID: f.drama.ID}
	assert.ErrorIs(t, f.movies.Update(ctx, &missing), repositories.ErrNotFound)
}

func TestGORMMovieRepository_DeleteRemovesReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.movie(t, "Heat")
	review := models.Review{MovieID: m.ID, UserID: f.bob.ID, Rating: 8, Comment: "Great"}
	require.NoError(t, f.reviews.Create(ctx, &review))

	require.NoError(t, f.movies.Delete(ctx, m.ID))

	_, err := f.movies.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = f.reviews.GetByID(ctx, review.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, f.movies.Delete(ctx, m.ID), repositories.ErrNotFound)
}

func TestGORMReviewRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.movie(t, "Heat")

	reviews, err := f.reviews.GetByMovieID(ctx, m.ID)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	exists, err := f.reviews.Exists(ctx, m.ID, f.bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	review := models.Review{MovieID: m.ID, UserID: f.bob.ID, Rating: 7, Comment: "Tense"}
	require.NoError(t, f.reviews.Create(ctx, &review))

	exists, err = f.reviews.Exists(ctx, m.ID, f.bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	reviews, err = f.reviews.GetByMovieID(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "bob", reviews[0].Username)
	assert.Equal(t, 7, reviews[0].Rating)

	got, err := f.reviews.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, got.UserID)

	dup := models.Review{MovieID: m.ID, UserID: f.bob.ID, Rating: 1, Comment: "Again"}
	assert.ErrorIs(t, f.reviews.Create(ctx, &dup), repositories.ErrDuplicateKey)

	require.NoError(t, f.reviews.Delete(ctx, review.ID))
	assert.ErrorIs(t, f.reviews.Delete(ctx, review.ID), repositories.ErrNotFound)
}
