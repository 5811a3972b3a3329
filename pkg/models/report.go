package models

import (
	"time"
)

// BackupReport represents the results of a backup run
type BackupReport struct {
	// Operation details
	OperationID string
	SourcePath  string
	DestPath    string
	DestID      string
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// File operations performed
	Operations []FileOperation

	// Errors encountered
	Errors []BackupError

	// Overall status
	Status BackupStatus
}

// Statistics holds backup run metrics
type Statistics struct {
	// Local entries seen
	FilesScanned int
	DirsScanned  int

	// Per-file outcomes
	FilesUploaded int
	FilesReplaced int
	FilesSkipped  int // up to date remotely
	FilesExcluded int // matched an exclude pattern or reserved name
	FilesErrored  int

	// Remote directory creation
	DirsCreated int

	// Remote listings fetched (one child process each)
	ListCalls int

	// Bytes handed to the external client for upload (local sizes; the
	// client owns the actual transfer)
	BytesQueued int64
}

// BackupStatus represents the overall result
type BackupStatus string

const (
	// StatusSuccess indicates all operations completed successfully
	StatusSuccess BackupStatus = "success"
	// StatusPartial indicates some operations failed
	StatusPartial BackupStatus = "partial"
	// StatusFailed indicates the backup run failed
	StatusFailed BackupStatus = "failed"
	// StatusCancelled indicates the run was cancelled
	StatusCancelled BackupStatus = "cancelled"
)

// BackupError represents an error during a backup run
type BackupError struct {
	FilePath  string
	Operation Action
	Error     string
	Timestamp time.Time
}

// ExitCode returns the appropriate exit code for the backup status
func (s BackupStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
