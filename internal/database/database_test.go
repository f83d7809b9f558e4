package database_test

import (
	"context"
	"fmt"
	"testing"

	"moviedb/internal/config"
	"moviedb/internal/database"
	"moviedb/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMigrateAndSeed(t *testing.T) {
	db, err := database.Open(config.Config{
		DatabaseDriver: "sqlite",
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBLogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repo := repositories.NewGORMGenreRepository(db)
	ctx := context.Background()

	require.NoError(t, database.SeedGenres(ctx, repo, []string{"Horror", "Comedy"}))
	// a second run leaves the table alone
	require.NoError(t, database.SeedGenres(ctx, repo, []string{"Western"}))

	genres, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Comedy", genres[0].Name)
	assert.Equal(t, "Horror", genres[1].Name)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(config.Config{DatabaseDriver: "oracle"})
	assert.Error(t, err)
}
