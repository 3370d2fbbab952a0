package repositories

import "context"

// BlobStore is a flat key/value object store (S3 or a local directory).
type BlobStore interface {
	// Bucket names the container keys live in.
	Bucket() string
	// Get returns the object stored under key or apperrors.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores data under key, replacing any previous object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
}
