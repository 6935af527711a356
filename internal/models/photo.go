package models

import "time"

// Photo represents a gallery entry backed by an externally hosted image
type Photo struct {
	ID          int64      `json:"id" db:"id"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	Description *string    `json:"description" db:"description"`
	PhotoDate   *time.Time `json:"photo_date" db:"photo_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
