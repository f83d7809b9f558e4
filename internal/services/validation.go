package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Bounds applied to user input.
const (
	MinYear         = 1900
	titleRule       = "min=4,max=64"
	descriptionRule = "min=4,max=1024"
	commentRule     = "min=4,max=1024"
	credentialRule  = "min=4,max=64"
	loginLengthRule = "max=64"
	minRating       = 1
	maxRating       = 10
)

// MovieInput is the raw form of a movie add or edit request.
type MovieInput struct {
	Title       string `json:"title" form:"title"`
	GenreID     string `json:"genre" form:"genre"`
	Description string `json:"description" form:"description"`
	Year        string `json:"year" form:"year"`
}

// RatingInput is the raw form of a rating request.
type RatingInput struct {
	Rating  string `json:"rating" form:"rating"`
	Comment string `json:"comment" form:"comment"`
}

// CredentialsInput is the raw form of a register or login request.
type CredentialsInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func invalid(msg string) error {
	return newError(KindInvalidInput, msg, nil)
}

// ValidateMovieFields checks a movie form and returns the parsed year.
// Checks run in a fixed order and stop at the first failure, whose
// message is the one the user sees.
func ValidateMovieFields(in MovieInput, genreIDs []string, now time.Time) (int, error) {
	for _, field := range []string{in.Title, in.GenreID, in.Description, in.Year} {
		if validate.Var(field, "required") != nil {
			return 0, invalid("Title, genre, description and year are required.")
		}
	}
	if validate.Var(in.Title, titleRule) != nil {
		return 0, invalid("Title must be between 4 and 64 characters.")
	}
	if validate.Var(in.Description, descriptionRule) != nil {
		return 0, invalid("Description must be between 4 and 1024 characters.")
	}
	if !slices.Contains(genreIDs, in.GenreID) {
		return 0, invalid("Unknown genre.")
	}

	year, err := strconv.Atoi(strings.TrimSpace(in.Year))
	if err != nil {
		return 0, invalid("Year must be a whole number.")
	}
	if validate.Var(year, fmt.Sprintf("gte=%d,lte=%d", MinYear, now.Year())) != nil {
		return 0, invalid(fmt.Sprintf("Year must be between %d and %d.", MinYear, now.Year()))
	}
	return year, nil
}

// ValidateRatingFields checks a rating form and returns the parsed rating.
func ValidateRatingFields(in RatingInput) (int, error) {
	if validate.Var(in.Rating, "required") != nil || validate.Var(in.Comment, "required") != nil {
		return 0, invalid("Rating and comment are required.")
	}
	rating, err := strconv.Atoi(strings.TrimSpace(in.Rating))
	if err != nil {
		return 0, invalid("Rating must be a whole number.")
	}
	if validate.Var(rating, fmt.Sprintf("gte=%d,lte=%d", minRating, maxRating)) != nil {
		return 0, invalid(fmt.Sprintf("Rating must be between %d and %d.", minRating, maxRating))
	}
	if validate.Var(in.Comment, commentRule) != nil {
		return 0, invalid("Comment must be between 4 and 1024 characters.")
	}
	return rating, nil
}

// ValidateRegistration checks the credentials of a new account.
func ValidateRegistration(in CredentialsInput) error {
	if validate.Var(in.Username, "required") != nil || validate.Var(in.Password, "required") != nil {
		return invalid("Username and password are required.")
	}
	if validate.Var(in.Username, credentialRule) != nil {
		return invalid("Username must be between 4 and 64 characters.")
	}
	if validate.Var(in.Password, credentialRule) != nil {
		return invalid("Password must be between 4 and 64 characters.")
	}
	return nil
}

// ValidateLogin checks login credentials before they reach the store.
func ValidateLogin(in CredentialsInput) error {
	if validate.Var(in.Username, "required") != nil || validate.Var(in.Password, "required") != nil {
		return invalid("Username and password are required.")
	}
	if validate.Var(in.Username, loginLengthRule) != nil {
		return invalid("Username must be at most 64 characters.")
	}
	if validate.Var(in.Password, loginLengthRule) != nil {
		return invalid("Password must be at most 64 characters.")
	}
	return nil
}
