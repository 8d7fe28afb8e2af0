// Package fsx abstracts the storage backends upload destinations live
// on. The same FileSystem interface is implemented by the local disk
// (Local) and by S3 buckets (S3), so coordinators stay backend-agnostic.
package fsx

import (
	"context"
	"io"
	"time"
)

// FileInfo represents information about a file.
type FileInfo struct {
	Name        string            // Base name of the file
	Size        int64             // File size in bytes
	ModTime     time.Time         // Modification time
	IsDir       bool              // Is a directory
	ContentType string            // MIME type (when available)
	Metadata    map[string]string // Additional metadata
}

// FileSystem defines the interface for file operations.
type FileSystem interface {
	// Read operations
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Write operations
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	CreateDir(ctx context.Context, path string) error

	// Delete operations
	DeleteFile(ctx context.Context, path string) error

	// Move operations
	Rename(ctx context.Context, oldPath, newPath string) error

	// Path operations
	Join(elem ...string) string
	Exists(ctx context.Context, path string) (bool, error)
}

// Copy streams a file from one filesystem to another. Source and
// destination may be the same backend or different ones.
func Copy(ctx context.Context, src FileSystem, srcPath string, dst FileSystem, dstPath string) error {
	r, err := src.ReadFileStream(ctx, srcPath)
	if err != nil {
		return err
	}
	defer r.Close()

	return dst.WriteFileStream(ctx, dstPath, r)
}
