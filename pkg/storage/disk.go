// Package storage is the filesystem abstraction the pipeline reads and
// writes its CSV files through.
//
// Two drivers are available:
//   - "local": local filesystem (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.FromConfig(ctx)
//	err = disk.Put(ctx, "exports/orders.csv", data)
package storage

import (
	"context"
	"io"
)

// Disk is the filesystem driver interface. Paths are slash-separated and
// relative to the disk root.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path. A lookup that fails for
	// any reason other than absence returns the error.
	Exists(ctx context.Context, path string) (bool, error)

	// Location is a human-readable absolute location for path, used in
	// messages and errors.
	Location(path string) string
}
