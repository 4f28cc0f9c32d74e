package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrObjectNotFound is returned when the requested key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found in storage")

// FileStorage defines the object storage operations used for the bundled exercise library:
// reading catalog documents and handing out temporary links to exercise media.
type FileStorage interface {
	// GetObject downloads the whole object stored under objectKey.
	GetObject(ctx context.Context, objectKey string) ([]byte, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}
