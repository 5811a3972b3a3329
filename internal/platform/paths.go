package platform

import (
	"strings"
)

// NormalizeDrivePath normalizes a remote drive path.
// Backslashes are converted to forward slashes so Windows-style input works,
// and leading/trailing separators are stripped. The empty result means the
// drive root.
func NormalizeDrivePath(path string) string {
	// Windows shells turn a trailing \" into a literal quote; treat a bare
	// quote as the root path.
	if path == `"` {
		return ""
	}

	normalized := strings.ReplaceAll(path, "\\", "/")
	return strings.Trim(normalized, "/")
}

// SplitDrivePath splits a remote drive path into its directory components.
// Returns nil for the drive root.
func SplitDrivePath(path string) []string {
	normalized := NormalizeDrivePath(path)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "/")
}

// IsDriveRoot reports whether the path refers to the drive root.
func IsDriveRoot(path string) bool {
	return NormalizeDrivePath(path) == ""
}

// ValidateDrivePath checks that a drive path contains no empty components
// (e.g. "/a//b")
func ValidateDrivePath(path string) error {
	normalized := NormalizeDrivePath(path)
	if normalized == "" {
		return nil
	}
	for _, part := range strings.Split(normalized, "/") {
		if part == "" {
			return &PathError{Path: path, Message: "path contains an empty component"}
		}
	}
	return nil
}

// PathError represents a drive path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid drive path '" + e.Path + "': " + e.Message
}
