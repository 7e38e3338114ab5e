package storage

import (
	"context"
	"io"
	"time"
)

// Provider names for the supported backends.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// FileInfo contains metadata about a stored object.
type FileInfo struct {
	Path         string
	Size         int64
	LastModified time.Time
}

// Storage defines the interface for object storage operations.
type Storage interface {
	// Upload writes data from reader to the given path.
	Upload(ctx context.Context, path string, reader io.Reader) error

	// Delete removes the object at the given path.
	// Returns nil if the object does not exist.
	Delete(ctx context.Context, path string) error

	// Exists checks whether an object exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns a location for the object that downstream services can read.
	URL(ctx context.Context, path string) (string, error)
}
