package storage

import (
	"context"
	"io"
)

// FileStorage abstracts the blob store used for attendance photos.
// The local implementation writes under a base directory served as
// static files; a cloud implementation can replace it behind the
// same interface.
type FileStorage interface {
	// Upload stores a file and returns the storage path/key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for the stored path.
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
