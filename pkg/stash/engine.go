// Package stash walks a local directory tree and reconciles it into a remote
// drive directory by orchestrating the external drive client.
package stash

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pilgrimtabby/gdrive-stash/pkg/gdrive"
	"github.com/pilgrimtabby/gdrive-stash/pkg/logging"
	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
	"github.com/pilgrimtabby/gdrive-stash/pkg/output"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
	"github.com/pilgrimtabby/gdrive-stash/pkg/storage"
)

// Engine orchestrates a backup run. Directory listing, resolution, and
// creation are synchronous because uploads depend on the parent ids they
// produce; uploads and deletes run as parallel child processes bounded by
// the operation's worker limit and awaited before Run returns.
type Engine struct {
	local     storage.Backend
	drive     gdrive.Client
	resolver  *remote.Resolver
	formatter output.Formatter
	logger    logging.Logger
	operation *models.BackupOperation

	// mu guards the report and the progress counters
	mu        sync.Mutex
	report    *models.BackupReport
	queued    int
	completed int
}

// NewEngine creates a new backup engine
func NewEngine(
	local storage.Backend,
	drive gdrive.Client,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.BackupOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		local:     local,
		drive:     drive,
		resolver:  remote.NewResolver(drive),
		formatter: formatter,
		logger:    logger,
		operation: operation,
	}
}

// Run executes the backup run and returns a report
func (e *Engine) Run(ctx context.Context) (*models.BackupReport, error) {
	startTime := time.Now()
	e.report = &models.BackupReport{
		OperationID: e.operation.ID,
		SourcePath:  e.operation.SourcePath,
		DestPath:    e.operation.DestPath,
		DryRun:      e.operation.DryRun,
		StartTime:   startTime,
		Status:      models.StatusSuccess,
	}

	e.logger.Info(ctx, "Starting backup run", logging.Fields{
		"operation_id": e.operation.ID,
		"source":       e.operation.SourcePath,
		"dest":         e.operation.DestPath,
		"recursive":    e.operation.Recursive,
		"dry_run":      e.operation.DryRun,
		"max_workers":  e.operation.MaxWorkers,
	})

	if e.formatter != nil {
		if err := e.formatter.Start(nil); err != nil {
			return nil, err
		}
	}

	destID, children, err := e.resolveDest(ctx)
	if err != nil {
		return e.finish(ctx, err)
	}
	e.report.DestID = destID

	workers := e.operation.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	walkErr := e.backupDir(gctx, grp, "", destID, children)

	// Await every spawned upload/delete before reporting
	waitErr := grp.Wait()
	if walkErr == nil {
		walkErr = waitErr
	}

	return e.finish(ctx, walkErr)
}

// resolveDest resolves the destination directory id and its listing
func (e *Engine) resolveDest(ctx context.Context) (string, []models.RemoteFile, error) {
	if e.operation.DestIsID {
		id := e.operation.DestPath
		children, err := e.listRemote(ctx, id)
		if err != nil {
			return "", nil, err
		}
		return id, children, nil
	}

	e.countList() // root listing inside ResolveDir
	id, children, err := e.resolver.ResolveDir(ctx, e.operation.DestPath, e.operation.MakeParents)
	if err != nil {
		return "", nil, err
	}
	return id, children, nil
}

// backupDir reconciles one local directory level against its remote listing
// and recurses into subdirectories when requested
func (e *Engine) backupDir(ctx context.Context, grp *errgroup.Group, rel, parentID string, children []models.RemoteFile) error {
	entries, err := e.local.List(ctx, rel)
	if err != nil {
		return fmt.Errorf("failed to read local directory %q: %w", rel, err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir {
			if err := e.handleDir(ctx, grp, entry, parentID, children); err != nil {
				return err
			}
			continue
		}

		e.handleFile(ctx, grp, entry, parentID, children)
	}

	return nil
}

// handleDir creates-or-reuses the matching remote directory and recurses
func (e *Engine) handleDir(ctx context.Context, grp *errgroup.Group, entry storage.FileInfo, parentID string, children []models.RemoteFile) error {
	e.mu.Lock()
	e.report.Stats.DirsScanned++
	e.mu.Unlock()

	if !e.operation.Recursive {
		e.logger.Debug(ctx, "Skipping directory (non-recursive run)", logging.Fields{
			"path": entry.RelativePath,
		})
		return nil
	}

	if shouldExclude(entry.RelativePath, e.operation.ExcludePatterns) {
		e.logger.Debug(ctx, "Skipping excluded directory", logging.Fields{
			"path": entry.RelativePath,
		})
		return nil
	}

	childID, childListing, err := e.enterDir(ctx, entry, parentID, children)
	if err != nil {
		e.recordError(entry.RelativePath, models.ActionMkdir, err)
		e.progress(output.ProgressUpdate{
			Type:     "file_error",
			FilePath: entry.RelativePath,
			Err:      err,
		})
		// The subtree is unreachable without its parent id; move on to
		// siblings rather than aborting the whole run.
		return nil
	}

	return e.backupDir(ctx, grp, entry.RelativePath, childID, childListing)
}

// enterDir returns the remote id and listing for a local subdirectory,
// creating the remote directory when absent
func (e *Engine) enterDir(ctx context.Context, entry storage.FileInfo, parentID string, children []models.RemoteFile) (string, []models.RemoteFile, error) {
	match := remote.FindChild(children, entry.Name, models.KindFolder)
	if match != nil {
		listing, err := e.listRemote(ctx, match.ID)
		if err != nil {
			return "", nil, err
		}
		return match.ID, listing, nil
	}

	e.mu.Lock()
	e.report.Stats.DirsCreated++
	e.report.Operations = append(e.report.Operations, models.FileOperation{
		RelativePath: entry.RelativePath,
		Action:       models.ActionMkdir,
		Reason:       reasonAbsent,
	})
	e.mu.Unlock()

	if e.operation.DryRun {
		// No remote id exists yet; descend with an unknown id and an empty
		// listing so planned uploads are still reported.
		e.progress(output.ProgressUpdate{Type: "dir_created", FilePath: entry.RelativePath})
		return "", nil, nil
	}

	id, err := e.drive.Mkdir(ctx, parentID, entry.Name)
	if err != nil {
		return "", nil, err
	}

	e.logger.Info(ctx, "Created remote directory", logging.Fields{
		"path": entry.RelativePath,
		"id":   id,
	})
	e.progress(output.ProgressUpdate{Type: "dir_created", FilePath: entry.RelativePath})

	return id, nil, nil
}

// handleFile decides what to do with a local file and schedules the work
func (e *Engine) handleFile(ctx context.Context, grp *errgroup.Group, entry storage.FileInfo, parentID string, children []models.RemoteFile) {
	e.mu.Lock()
	e.report.Stats.FilesScanned++
	scanned := e.report.Stats.FilesScanned
	e.mu.Unlock()

	e.progress(output.ProgressUpdate{Type: "scan", TotalFiles: scanned})

	d := decide(entry, children, e.operation.ExcludePatterns)

	if d.Action == models.ActionSkip {
		e.mu.Lock()
		if d.Excluded {
			e.report.Stats.FilesExcluded++
		} else {
			e.report.Stats.FilesSkipped++
		}
		e.report.Operations = append(e.report.Operations, models.FileOperation{
			RelativePath: entry.RelativePath,
			Action:       models.ActionSkip,
			Reason:       d.Reason,
			Size:         entry.Size,
		})
		e.completed++
		completed := e.completed
		e.mu.Unlock()

		e.progress(output.ProgressUpdate{
			Type:           "file_skip",
			FilePath:       entry.RelativePath,
			Action:         models.ActionSkip,
			Reason:         d.Reason,
			CompletedFiles: completed,
		})
		return
	}

	e.mu.Lock()
	e.queued++
	e.mu.Unlock()

	grp.Go(func() error {
		e.transfer(ctx, entry, parentID, d)
		// Task errors are collected in the report; only cancellation stops
		// the remaining tasks.
		return ctx.Err()
	})
}

// transfer performs one upload or replace as child process invocations
func (e *Engine) transfer(ctx context.Context, entry storage.FileInfo, parentID string, d decision) {
	start := time.Now()

	e.progress(output.ProgressUpdate{
		Type:     "file_start",
		FilePath: entry.RelativePath,
		Action:   d.Action,
	})

	var err error
	if !e.operation.DryRun {
		// A replace deletes first so the re-upload resets the remote
		// created time.
		if d.Action == models.ActionReplace {
			err = e.drive.Delete(ctx, d.Remote.ID)
		}
		if err == nil {
			err = e.drive.Upload(ctx, parentID, entry.Path)
		}
	}

	op := models.FileOperation{
		RelativePath: entry.RelativePath,
		Action:       d.Action,
		Reason:       d.Reason,
		Error:        err,
		Size:         entry.Size,
		Duration:     time.Since(start),
	}
	if d.Remote != nil {
		op.RemoteID = d.Remote.ID
	}

	e.mu.Lock()
	e.report.Operations = append(e.report.Operations, op)
	if err != nil {
		e.report.Stats.FilesErrored++
		e.report.Errors = append(e.report.Errors, models.BackupError{
			FilePath:  entry.RelativePath,
			Operation: d.Action,
			Error:     err.Error(),
			Timestamp: time.Now(),
		})
	} else {
		e.report.Stats.BytesQueued += entry.Size
		if d.Action == models.ActionReplace {
			e.report.Stats.FilesReplaced++
		} else {
			e.report.Stats.FilesUploaded++
		}
	}
	e.completed++
	completed := e.completed
	e.mu.Unlock()

	if err != nil {
		e.logger.Error(ctx, "Transfer failed", err, logging.Fields{
			"path":   entry.RelativePath,
			"action": string(d.Action),
		})
		e.progress(output.ProgressUpdate{
			Type:           "file_error",
			FilePath:       entry.RelativePath,
			Action:         d.Action,
			Err:            err,
			CompletedFiles: completed,
		})
		return
	}

	e.progress(output.ProgressUpdate{
		Type:           "file_complete",
		FilePath:       entry.RelativePath,
		Action:         d.Action,
		CompletedFiles: completed,
	})
}

// listRemote lists a remote directory and counts the call
func (e *Engine) listRemote(ctx context.Context, id string) ([]models.RemoteFile, error) {
	e.countList()
	return e.drive.List(ctx, id)
}

func (e *Engine) countList() {
	e.mu.Lock()
	e.report.Stats.ListCalls++
	e.mu.Unlock()
}

func (e *Engine) recordError(path string, action models.Action, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.report.Stats.FilesErrored++
	e.report.Errors = append(e.report.Errors, models.BackupError{
		FilePath:  path,
		Operation: action,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}

func (e *Engine) progress(update output.ProgressUpdate) {
	if e.formatter != nil {
		e.formatter.Progress(update)
	}
}

// finish finalizes the report status and timing
func (e *Engine) finish(ctx context.Context, runErr error) (*models.BackupReport, error) {
	e.mu.Lock()
	report := e.report
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	switch {
	case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
		report.Status = models.StatusCancelled
	case runErr != nil:
		report.Status = models.StatusFailed
	case len(report.Errors) > 0:
		if report.Stats.FilesErrored >= report.Stats.FilesScanned && report.Stats.FilesScanned > 0 {
			report.Status = models.StatusFailed
		} else {
			report.Status = models.StatusPartial
		}
	}
	e.mu.Unlock()

	if e.formatter != nil {
		if runErr != nil {
			e.formatter.Error(runErr)
		}
		e.formatter.Complete(report)
	}

	e.logger.Info(ctx, "Backup run finished", logging.Fields{
		"status":         string(report.Status),
		"duration":       report.Duration.String(),
		"files_uploaded": report.Stats.FilesUploaded,
		"files_replaced": report.Stats.FilesReplaced,
		"files_skipped":  report.Stats.FilesSkipped,
		"files_errored":  report.Stats.FilesErrored,
		"dirs_created":   report.Stats.DirsCreated,
	})

	return report, runErr
}
