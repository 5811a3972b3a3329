package models

import (
	"time"
)

// BackupOperation represents a backup run configuration
type BackupOperation struct {
	ID              string
	SourcePath      string
	DestPath        string
	DestIsID        bool
	Recursive       bool
	MakeParents     bool
	DryRun          bool
	MaxWorkers      int
	ExcludePatterns []string
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// Validate checks if the operation configuration is valid
func (op *BackupOperation) Validate() error {
	if op.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if op.DestPath == "" && op.DestIsID {
		return &ValidationError{Field: "DestPath", Message: "destination id is required"}
	}
	if op.MaxWorkers < 1 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers must be at least 1"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
