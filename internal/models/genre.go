package models

// Genre is immutable reference data a movie points at.
type Genre struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(64);not null"`
}
