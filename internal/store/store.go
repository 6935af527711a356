package store

import (
	"context"
	"errors"
	"time"

	"couplesync-backend/internal/models"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrDuplicateEmail = errors.New("email already in use")
	ErrNotFound       = errors.New("record not found")
)

// UserStore persists user accounts
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PhotoStore persists photo records
type PhotoStore interface {
	CreatePhoto(ctx context.Context, imageURL string, description *string, photoDate *time.Time) (*models.Photo, error)
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	GetPhoto(ctx context.Context, id int64) (*models.Photo, error)
	UpdatePhoto(ctx context.Context, id int64, description string, photoDate time.Time) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id int64) error
}
