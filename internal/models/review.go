package models

import "time"

// Review is a single user's rating of a movie. A user reviews a movie at most once.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	MovieID   string    `json:"movie_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_movie_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_movie_user"`
	Rating    int       `json:"rating" gorm:"not null"` // 1-10
	Comment   string    `json:"comment" gorm:"type:varchar(1024);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Username of the author, filled from the users join on reads only.
	Username string `json:"username,omitempty" gorm:"column:username;->;-:migration"`
}
