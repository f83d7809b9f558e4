package models

import "time"

// Event types published when catalog data changes.
const (
	EventMovieCreated  = "movie.created"
	EventMovieUpdated  = "movie.updated"
	EventMovieDeleted  = "movie.deleted"
	EventRatingAdded   = "rating.added"
	EventRatingDeleted = "rating.deleted"
)

// Event is a catalog change notification.
type Event struct {
	Type       string    `json:"type"`
	MovieID    string    `json:"movie_id"`
	ReviewID   string    `json:"review_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
