package attachment

import (
	"context"
	"time"
)

// FileStorage stages the scanned documents submitted with an intake form.
// Keys are recorded on the application record; the files themselves live in
// object storage.
type FileStorage interface {
	// Upload stores data under storageKey
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	// GenerateDownloadURL returns a presigned URL for retrieving a stored file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject removes a stored file
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists checks whether a file is present
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
