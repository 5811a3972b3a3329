package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer    io.Writer
	startTime time.Time
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.startTime = time.Now()
	return nil
}

// Progress reports progress during the run
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}

	switch update.Type {
	case "file_start":
		verb := "Uploading"
		if update.Action == models.ActionReplace {
			verb = "Replacing"
		}
		fmt.Fprintf(f.writer, "%s %s...\n", verb, update.FilePath)

	case "file_complete":
		fmt.Fprintf(f.writer, "✓ %s (%s)\n", update.FilePath, update.Action)

	case "file_skip":
		fmt.Fprintf(f.writer, "- %s (%s)\n", update.FilePath, update.Reason)

	case "file_error":
		fmt.Fprintf(f.writer, "✗ %s: %v\n", update.FilePath, update.Err)

	case "dir_created":
		fmt.Fprintf(f.writer, "+ %s/ (created remotely)\n", update.FilePath)
	}

	return nil
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(report *models.BackupReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "\n")
	if report.DryRun {
		fmt.Fprintf(f.writer, "Dry-run completed in %s\n", report.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(f.writer, "Backup completed in %s\n", report.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Summary:\n")
	fmt.Fprintf(f.writer, "  Scanned:\n")
	fmt.Fprintf(f.writer, "    Files:          %d\n", report.Stats.FilesScanned)
	fmt.Fprintf(f.writer, "    Directories:    %d\n", report.Stats.DirsScanned)
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "  Operations:\n")
	fmt.Fprintf(f.writer, "    Files uploaded:   %d\n", report.Stats.FilesUploaded)
	fmt.Fprintf(f.writer, "    Files replaced:   %d\n", report.Stats.FilesReplaced)
	fmt.Fprintf(f.writer, "    Files up to date: %d\n", report.Stats.FilesSkipped)
	fmt.Fprintf(f.writer, "    Files excluded:   %d\n", report.Stats.FilesExcluded)
	fmt.Fprintf(f.writer, "    Files errored:    %d\n", report.Stats.FilesErrored)
	fmt.Fprintf(f.writer, "    Dirs created:     %d\n", report.Stats.DirsCreated)
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "  Transfer:\n")
	fmt.Fprintf(f.writer, "    Data queued:    %s\n", formatBytes(report.Stats.BytesQueued))
	fmt.Fprintf(f.writer, "    Remote lists:   %d\n", report.Stats.ListCalls)
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(f.writer, "\nErrors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(f.writer, "  %s (%s): %s\n", e.FilePath, e.Operation, e.Error)
		}
	}

	return nil
}

// Error reports an error during the run
func (f *HumanFormatter) Error(err error) error {
	if f.writer == nil {
		f.writer = os.Stderr
	}
	fmt.Fprintf(f.writer, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes formats a byte count in human-readable units
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
