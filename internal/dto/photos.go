package dto

// UpdatePhotoRequest represents the request payload for updating photo metadata
type UpdatePhotoRequest struct {
	Description string `json:"description" validate:"required"`
	PhotoDate   string `json:"photoDate" validate:"required"` // YYYY-MM-DD
}

// PhotoResponse represents a photo record in API responses
type PhotoResponse struct {
	ID          int64   `json:"id"`
	ImageURL    string  `json:"image_url"`
	Description *string `json:"description"`
	PhotoDate   *string `json:"photo_date"` // YYYY-MM-DD
	CreatedAt   string  `json:"created_at"`
}

// MessageResponse represents a plain confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
