package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound   = errors.New("file not found")
	ErrInvalidKey = errors.New("invalid storage key")
)

// FileInfo describes a stored object
type FileInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// ImageStorage defines the interface for car image storage backends
type ImageStorage interface {
	// Save writes the reader's content under key, replacing any previous file
	Save(ctx context.Context, key string, reader io.Reader) error

	// Open returns the stored content; ErrNotFound when key is absent
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks if a file exists and returns its size
	Exists(ctx context.Context, key string) (exists bool, size int64, err error)

	// Delete removes a file; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// List returns every stored file
	List(ctx context.Context) ([]FileInfo, error)

	// PublicPath is the URL path clients use to fetch key
	PublicPath(key string) string
}
