// Package storage abstracts the object store backing uploaded files.
package storage

import (
	"context"
	"time"

	"cloud.google.com/go/storage"
)

// ObjectStore is the interface the upload and deletion services depend on.
type ObjectStore interface {
	// SignedUploadURL returns a V4 presigned PUT URL for key.
	SignedUploadURL(ctx context.Context, key, contentType string) (string, error)

	// SignedDownloadURL returns a V4 presigned GET URL for key.
	SignedDownloadURL(ctx context.Context, key string) (string, error)

	// Delete removes the backing object. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, key string) error
}

const (
	uploadURLTTL   = 15 * time.Minute
	downloadURLTTL = 1 * time.Hour
)

type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) SignedUploadURL(ctx context.Context, key, contentType string) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      "PUT",
		Expires:     time.Now().Add(uploadURLTTL),
		ContentType: contentType,
	})
}

func (s *GCSStore) SignedDownloadURL(ctx context.Context, key string) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(downloadURLTTL),
	})
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
