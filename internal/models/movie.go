package models

import "time"

// Movie represents a catalog entry. Titles are unique.
type Movie struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"uniqueIndex;type:varchar(64);not null"`
	Description string    `json:"description" gorm:"type:varchar(1024);not null"`
	Year        int       `json:"year" gorm:"not null"`
	GenreID     string    `json:"genre_id" gorm:"type:varchar(36);not null;index"`
	CreatedBy   string    `json:"created_by" gorm:"type:varchar(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// GenreName is filled from the genres join on reads only.
	GenreName string `json:"genre" gorm:"column:genre_name;->;-:migration"`
}

// MovieDetails is a movie enriched with its reviews and their aggregate.
// It is assembled on read and never persisted.
type MovieDetails struct {
	Movie
	Reviews       []Review `json:"reviews"`
	ReviewCount   int      `json:"review_count"`
	ReviewAverage *float64 `json:"review_average"` // nil when ReviewCount is zero
}

// RatedBy reports whether userID has reviewed the movie.
func (m *MovieDetails) RatedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, r := range m.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
