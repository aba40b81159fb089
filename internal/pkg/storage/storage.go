package storage

import (
	"context"
	"io"
)

// Storage is the file storage provider interface. Paths are relative to the
// provider's root; the concrete backend decides where bytes actually live.
type Storage interface {
	// Save writes content at the given relative path, creating parents as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path.
	Delete(ctx context.Context, path string) error
}
