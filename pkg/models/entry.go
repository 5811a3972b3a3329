package models

import (
	"time"
)

// RemoteKind categorizes a remote file into one of two types: folder or
// non-folder. The remote service reports finer-grained types (document,
// regular, shortcut, ...) but only the folder distinction matters for
// matching local entries.
type RemoteKind string

const (
	// KindFolder indicates a remote directory
	KindFolder RemoteKind = "folder"
	// KindFile indicates any non-directory remote file
	KindFile RemoteKind = "file"
)

// ParseRemoteKind maps the raw type column of the external client's listing
// to a RemoteKind
func ParseRemoteKind(raw string) RemoteKind {
	if raw == "folder" {
		return KindFolder
	}
	return KindFile
}

// RemoteFile represents one entry of a remote directory listing
type RemoteFile struct {
	// ID is the remote identifier of the file
	ID string

	// Name is the filename, case sensitive
	Name string

	// Kind distinguishes folders from regular files
	Kind RemoteKind

	// RawType is the type column exactly as the external client printed it
	RawType string

	// Size is the size column as printed (human formatted, blank for folders)
	Size string

	// Created is when the file was uploaded. Replacing a file resets this,
	// which is what makes it usable as a staleness marker.
	Created time.Time
}

// Action represents what should be done with a local file
type Action string

const (
	// ActionUpload uploads a file that does not exist remotely
	ActionUpload Action = "upload"
	// ActionReplace deletes the stale remote copy and re-uploads
	ActionReplace Action = "replace"
	// ActionSkip leaves the file alone (up to date or excluded)
	ActionSkip Action = "skip"
	// ActionMkdir creates a remote directory
	ActionMkdir Action = "mkdir"
)

// FileOperation represents a performed (or planned, in dry-run) operation
type FileOperation struct {
	// RelativePath is the local path relative to the source root
	RelativePath string

	// RemoteID is the remote file id involved, when known
	RemoteID string

	Action   Action
	Reason   string
	Error    error
	Size     int64
	Duration time.Duration
}
