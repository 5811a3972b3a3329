package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer    io.Writer
	startTime time.Time
	events    []JSONEvent
}

// JSONEvent represents a single event in the JSON output stream
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
}

// JSONFileData represents file-related event data
type JSONFileData struct {
	Path   string `json:"path"`
	Action string `json:"action,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID string          `json:"operation_id"`
	Source      string          `json:"source"`
	Dest        string          `json:"dest"`
	DestID      string          `json:"dest_id,omitempty"`
	DryRun      bool            `json:"dry_run"`
	Status      string          `json:"status"`
	Duration    string          `json:"duration"`
	DurationMs  int64           `json:"duration_ms"`
	Stats       JSONStatsData   `json:"stats"`
	Errors      []JSONErrorData `json:"errors,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	FilesScanned  int   `json:"files_scanned"`
	DirsScanned   int   `json:"dirs_scanned"`
	FilesUploaded int   `json:"files_uploaded"`
	FilesReplaced int   `json:"files_replaced"`
	FilesSkipped  int   `json:"files_skipped"`
	FilesExcluded int   `json:"files_excluded"`
	FilesErrored  int   `json:"files_errored"`
	DirsCreated   int   `json:"dirs_created"`
	ListCalls     int   `json:"list_calls"`
	BytesQueued   int64 `json:"bytes_queued"`
}

// JSONErrorData represents an error in JSON format
type JSONErrorData struct {
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.startTime = time.Now()
	f.events = f.events[:0]
	return nil
}

// Progress records progress events; they are emitted with the final report
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	switch update.Type {
	case "file_complete", "file_skip", "file_error", "dir_created":
		data := JSONFileData{
			Path:   update.FilePath,
			Action: string(update.Action),
			Reason: update.Reason,
		}
		if update.Err != nil {
			data.Error = update.Err.Error()
		}
		f.events = append(f.events, JSONEvent{
			Timestamp: time.Now(),
			Type:      update.Type,
			Data:      data,
		})
	}
	return nil
}

// Complete emits the collected events and the final report as one document
func (f *JSONFormatter) Complete(report *models.BackupReport) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}

	doc := struct {
		Events []JSONEvent    `json:"events"`
		Report JSONReportData `json:"report"`
	}{
		Events: f.events,
		Report: JSONReportData{
			OperationID: report.OperationID,
			Source:      report.SourcePath,
			Dest:        report.DestPath,
			DestID:      report.DestID,
			DryRun:      report.DryRun,
			Status:      string(report.Status),
			Duration:    report.Duration.String(),
			DurationMs:  report.Duration.Milliseconds(),
			Stats: JSONStatsData{
				FilesScanned:  report.Stats.FilesScanned,
				DirsScanned:   report.Stats.DirsScanned,
				FilesUploaded: report.Stats.FilesUploaded,
				FilesReplaced: report.Stats.FilesReplaced,
				FilesSkipped:  report.Stats.FilesSkipped,
				FilesExcluded: report.Stats.FilesExcluded,
				FilesErrored:  report.Stats.FilesErrored,
				DirsCreated:   report.Stats.DirsCreated,
				ListCalls:     report.Stats.ListCalls,
				BytesQueued:   report.Stats.BytesQueued,
			},
		},
	}

	for _, e := range report.Errors {
		doc.Report.Errors = append(doc.Report.Errors, JSONErrorData{
			Path:      e.FilePath,
			Operation: string(e.Operation),
			Error:     e.Error,
			Timestamp: e.Timestamp,
		})
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Error records an error event
func (f *JSONFormatter) Error(err error) error {
	f.events = append(f.events, JSONEvent{
		Timestamp: time.Now(),
		Type:      "error",
		Data:      JSONFileData{Error: err.Error()},
	})
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
