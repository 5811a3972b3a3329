package storage

import (
	"context"
	"time"
)

// FileInfo represents metadata about a local file
type FileInfo struct {
	// Name is the base name of the entry
	Name string

	// Path is the full path on the filesystem
	Path string

	// RelativePath is the path relative to the backup root
	RelativePath string

	// Size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// IsDir indicates if this is a directory
	IsDir bool
}

// Backend defines the interface for reading the local tree being backed up.
// The engine descends one directory level at a time, mirroring how the
// remote side is listed, so List is intentionally non-recursive.
type Backend interface {
	// List returns the direct entries of the directory at the given path
	// relative to the root ("" for the root itself)
	List(ctx context.Context, dir string) ([]FileInfo, error)

	// Stat returns metadata for a path relative to the root
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a path exists under the root
	Exists(ctx context.Context, path string) (bool, error)

	// Root returns the absolute root path
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
