// Package storage stores uploaded artwork images on a named disk.
//
// Two drivers are available:
//   - "local"  local filesystem (default), served under /storage
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	storage.Connect(ctx)
//	err := storage.Default().Put(ctx, "artworks/x.jpg", file, "image/jpeg")
//	url := storage.Default().URL("artworks/x.jpg")
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidPath is returned for keys that are empty or escape the disk root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Disk is the driver interface every backend implements.
type Disk interface {
	// Put writes r to key, creating parent directories as needed.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error

	// Get opens the object at key. Caller must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) bool

	// Delete removes key. Returns nil if it did not exist.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string
}

// cleanKey normalises a slash-separated key and rejects traversal.
func cleanKey(key string) (string, error) {
	k := strings.TrimLeft(path.Clean("/"+strings.ReplaceAll(key, "\\", "/")), "/")
	if k == "" || k == "." || strings.Contains(key, "..") {
		return "", ErrInvalidPath
	}
	return k, nil
}
