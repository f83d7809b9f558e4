package services_test

import (
	"strings"
	"testing"
	"time"

	"moviedb/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMovieFields(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	genres := []string{"g-drama", "g-scifi"}
	valid := services.MovieInput{Title: "Dune", GenreID: "g-scifi", Description: "Desert planet", Year: "2021"}

	year, err := services.ValidateMovieFields(valid, genres, now)
	require.NoError(t, err)
	assert.Equal(t, 2021, year)

	tests := []struct {
		name    string
		edit    func(in *services.MovieInput)
		message string
	}{
		{"missing title", func(in *services.MovieInput) { in.Title = "" }, "Title, genre, description and year are required."},
		{"missing year", func(in *services.MovieInput) { in.Year = "" }, "Title, genre, description and year are required."},
		{"short title", func(in *services.MovieInput) { in.Title = "Up" }, "Title must be between 4 and 64 characters."},
		{"long title", func(in *services.MovieInput) { in.Title = strings.Repeat("a", 65) }, "Title must be between 4 and 64 characters."},
		{"short description", func(in *services.MovieInput) { in.Description = "ok" }, "Description must be between 4 and 1024 characters."},
		{"long description", func(in *services.MovieInput) { in.Description = strings.Repeat("a", 1025) }, "Description must be between 4 and 1024 characters."},
		{"unknown genre", func(in *services.MovieInput) { in.GenreID = "g-western" }, "Unknown genre."},
		{"year not a number", func(in *services.MovieInput) { in.Year = "twenty" }, "Year must be a whole number."},
		{"year too early", func(in *services.MovieInput) { in.Year = "1899" }, "Year must be between 1900 and 2026."},
		{"year in the future", func(in *services.MovieInput) { in.Year = "2027" }, "Year must be between 1900 and 2026."},
		// checks run in order: title before genre before year
		{"first failure wins", func(in *services.MovieInput) {
			in.Title = "Up"
			in.GenreID = "nope"
			in.Year = "1"
		}, "Title must be between 4 and 64 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.edit(&in)
			_, err := services.ValidateMovieFields(in, genres, now)
			assert.ErrorIs(t, err, services.ErrInvalidInput)
			assert.Equal(t, tt.message, services.Message(err))
		})
	}

	// bounds are inclusive and count characters, not bytes
	edge := valid
	edge.Title = strings.Repeat("é", 64)
	edge.Year = "1900"
	year, err = services.ValidateMovieFields(edge, genres, now)
	require.NoError(t, err)
	assert.Equal(t, 1900, year)

	edge.Year = "2026"
	_, err = services.ValidateMovieFields(edge, genres, now)
	assert.NoError(t, err)
}

func TestValidateRatingFields(t *testing.T) {
	rating, err := services.ValidateRatingFields(services.RatingInput{Rating: "10", Comment: "Loved it"})
	require.NoError(t, err)
	assert.Equal(t, 10, rating)

	tests := []struct {
		in      services.RatingInput
		message string
	}{
		{services.RatingInput{Comment: "Loved it"}, "Rating and comment are required."},
		{services.RatingInput{Rating: "5"}, "Rating and comment are required."},
		{services.RatingInput{Rating: "five", Comment: "Loved it"}, "Rating must be a whole number."},
		{services.RatingInput{Rating: "0", Comment: "Loved it"}, "Rating must be between 1 and 10."},
		{services.RatingInput{Rating: "11", Comment: "Loved it"}, "Rating must be between 1 and 10."},
		{services.RatingInput{Rating: "3", Comment: "meh"}, "Comment must be between 4 and 1024 characters."},
		{services.RatingInput{Rating: "3", Comment: strings.Repeat("x", 1025)}, "Comment must be between 4 and 1024 characters."},
	}
	for _, tt := range tests {
		_, err := services.ValidateRatingFields(tt.in)
		assert.ErrorIs(t, err, services.ErrInvalidInput)
		assert.Equal(t, tt.message, services.Message(err))
	}
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, services.ValidateRegistration(services.CredentialsInput{Username: "alice", Password: "hunter2"}))
	assert.NoError(t, services.ValidateLogin(services.CredentialsInput{Username: "bob", Password: "x"}))

	err := services.ValidateRegistration(services.CredentialsInput{Username: "bob", Password: "secret"})
	assert.Equal(t, "Username must be between 4 and 64 characters.", services.Message(err))

	err = services.ValidateRegistration(services.CredentialsInput{Username: "alice", Password: "abc"})
	assert.Equal(t, "Password must be between 4 and 64 characters.", services.Message(err))

	err = services.ValidateRegistration(services.CredentialsInput{Username: "alice"})
	assert.Equal(t, "Username and password are required.", services.Message(err))

	err = services.ValidateLogin(services.CredentialsInput{Username: strings.Repeat("a", 65), Password: "secret"})
	assert.Equal(t, "Username must be at most 64 characters.", services.Message(err))

	err = services.ValidateLogin(services.CredentialsInput{Username: "alice", Password: strings.Repeat("a", 65)})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
