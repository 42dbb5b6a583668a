package catalog

import (
	"context"
	"io"
)

// ObjectStorageService stores uploaded files. Implemented by the local
// filesystem and S3 backends in the infrastructure layer.
type ObjectStorageService interface {
	// PutObject writes body under key, replacing any existing object
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// DeleteObject removes the object; a missing object is not an error
	DeleteObject(ctx context.Context, key string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, key string) (bool, error)

	// URL returns the address clients use to fetch the object
	URL(ctx context.Context, key string) (string, error)
}
