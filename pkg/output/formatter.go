package output

import (
	"io"

	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// ProgressUpdate represents a progress notification during a backup run
type ProgressUpdate struct {
	Type           string // "scan", "file_start", "file_complete", "file_skip", "file_error", "dir_created"
	FilePath       string
	Action         models.Action
	Reason         string
	Err            error
	CompletedFiles int
	TotalFiles     int
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON, and progress-bar formatters
type Formatter interface {
	// Start initializes the formatter for a new backup run
	Start(writer io.Writer) error

	// Progress reports progress during the run
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays summary
	Complete(report *models.BackupReport) error

	// Error reports an error during the run
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
