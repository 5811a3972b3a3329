package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// ProgressFormatter renders a file-count progress bar. The external client
// owns byte-level transfer, so progress is tracked per file, with the total
// growing as the scan discovers more files.
type ProgressFormatter struct {
	mu     sync.Mutex
	writer io.Writer
	bar    *pb.ProgressBar
	human  *HumanFormatter
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the formatter
func (f *ProgressFormatter) Start(writer io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	f.bar = pb.New(0)
	f.bar.SetWriter(writer)
	f.bar.SetTemplateString(`{{counters . }} files {{bar . }} {{percent . }}`)
	f.bar.Start()

	return nil
}

// Progress reports progress during the run
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return nil
	}

	switch update.Type {
	case "scan":
		if int64(update.TotalFiles) > f.bar.Total() {
			f.bar.SetTotal(int64(update.TotalFiles))
		}
	case "file_complete", "file_skip", "file_error":
		f.bar.Increment()
	}

	return nil
}

// Complete stops the bar and prints the human summary below it
func (f *ProgressFormatter) Complete(report *models.BackupReport) error {
	f.mu.Lock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	writer := f.writer
	f.mu.Unlock()

	if err := f.human.Start(writer); err != nil {
		return err
	}
	return f.human.Complete(report)
}

// Error reports an error during the run
func (f *ProgressFormatter) Error(err error) error {
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
