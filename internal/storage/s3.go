// Package storage uploads photo binaries to an S3-compatible object store
// (MinIO, Spaces, R2) and maps public URLs back to deletable asset ids.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"couplesync-backend/internal/config"
)

// Uploader stores binary assets and deletes them by identifier
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (publicURL, assetID string, err error)
	Delete(ctx context.Context, assetID string) error
}

// s3API is the slice of the S3 client used by the uploader, kept narrow so
// tests can stub it.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Uploader implements Uploader against an S3-compatible endpoint
type S3Uploader struct {
	client s3API
	cfg    *config.StorageConfig
}

// NewS3Uploader builds an S3 client with static credentials and the
// configured base endpoint
func NewS3Uploader(ctx context.Context, cfg *config.StorageConfig) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Uploader{client: client, cfg: cfg}, nil
}

// Upload streams body to the object store and returns the public URL plus the
// asset id (the object key). Keys are extension-less so the id derived from a
// URL always addresses the stored object exactly.
func (u *S3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, string, error) {
	key := fmt.Sprintf("%s/%s", u.cfg.Folder, uuid.New())

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object %q: %w", key, err)
	}

	return u.publicURL(key), key, nil
}

// Delete removes the object addressed by assetID
func (u *S3Uploader) Delete(ctx context.Context, assetID string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", assetID, err)
	}
	return nil
}

func (u *S3Uploader) publicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	return strings.TrimSuffix(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + key
}

// AssetIDFromURL derives the provider asset id from a stored image URL: the
// last two path segments joined, with any file extension stripped. Returns
// false when the URL has fewer than two path segments.
func AssetIDFromURL(rawURL string) (string, bool) {
	segments := strings.Split(rawURL, "/")
	if len(segments) < 2 {
		return "", false
	}

	id := strings.Join(segments[len(segments)-2:], "/")
	if id == "" || strings.HasPrefix(id, "/") || strings.HasSuffix(id, "/") {
		return "", false
	}

	if ext := path.Ext(id); ext != "" {
		id = strings.TrimSuffix(id, ext)
	}

	return id, true
}
