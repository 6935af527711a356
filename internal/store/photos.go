package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"couplesync-backend/internal/models"
)

// PostgresPhotoStore implements PhotoStore on top of a pgx connection pool
type PostgresPhotoStore struct {
	db *pgxpool.Pool
}

// NewPostgresPhotoStore creates a new PostgresPhotoStore instance
func NewPostgresPhotoStore(db *pgxpool.Pool) *PostgresPhotoStore {
	return &PostgresPhotoStore{db: db}
}

// CreatePhoto inserts a new photo record and returns it in full
func (s *PostgresPhotoStore) CreatePhoto(ctx context.Context, imageURL string, description *string, photoDate *time.Time) (*models.Photo, error) {
	var photo models.Photo
	err := s.db.QueryRow(ctx,
		`INSERT INTO fotos (image_url, description, photo_date)
		 VALUES ($1, $2, $3)
		 RETURNING id, image_url, description, photo_date, created_at`,
		imageURL, description, photoDate).Scan(
		&photo.ID, &photo.ImageURL, &photo.Description, &photo.PhotoDate, &photo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}

	return &photo, nil
}

// ListPhotos returns all photo records, newest first
func (s *PostgresPhotoStore) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, image_url, description, photo_date, created_at
		 FROM fotos
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select photos: %w", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(&photo.ID, &photo.ImageURL, &photo.Description, &photo.PhotoDate, &photo.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}

	return photos, nil
}

// GetPhoto returns a single photo record, or ErrNotFound
func (s *PostgresPhotoStore) GetPhoto(ctx context.Context, id int64) (*models.Photo, error) {
	var photo models.Photo
	err := s.db.QueryRow(ctx,
		`SELECT id, image_url, description, photo_date, created_at FROM fotos WHERE id = $1`,
		id).Scan(&photo.ID, &photo.ImageURL, &photo.Description, &photo.PhotoDate, &photo.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select photo: %w", err)
	}

	return &photo, nil
}

// UpdatePhoto sets description and photo_date on an existing record and
// returns the updated row, or ErrNotFound if the id does not exist
func (s *PostgresPhotoStore) UpdatePhoto(ctx context.Context, id int64, description string, photoDate time.Time) (*models.Photo, error) {
	var photo models.Photo
	err := s.db.QueryRow(ctx,
		`UPDATE fotos
		 SET description = $1, photo_date = $2
		 WHERE id = $3
		 RETURNING id, image_url, description, photo_date, created_at`,
		description, photoDate, id).Scan(
		&photo.ID, &photo.ImageURL, &photo.Description, &photo.PhotoDate, &photo.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update photo: %w", err)
	}

	return &photo, nil
}

// DeletePhoto removes a photo record. Deleting an absent id is not an error;
// the operation is idempotent.
func (s *PostgresPhotoStore) DeletePhoto(ctx context.Context, id int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM fotos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
