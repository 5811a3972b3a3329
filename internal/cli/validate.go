package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pilgrimtabby/gdrive-stash/internal/platform"
	"github.com/pilgrimtabby/gdrive-stash/pkg/config"
	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// validateBackupFlags validates the backup command flags
func validateBackupFlags() error {
	// Validate source exists and is a directory
	info, err := os.Stat(backupFlags.Source)
	if os.IsNotExist(err) {
		return fmt.Errorf("source path does not exist: %s", backupFlags.Source)
	} else if err != nil {
		return fmt.Errorf("failed to access source path: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("source path is not a directory: %s", backupFlags.Source)
	}

	// Validate destination
	if backupFlags.DestIsID {
		if platform.NormalizeDrivePath(backupFlags.Dest) == "" {
			return fmt.Errorf("destination id must not be empty with --dest-is-id")
		}
		if backupFlags.MakeParents {
			return fmt.Errorf("--make-parents has no effect with --dest-is-id")
		}
	} else if err := platform.ValidateDrivePath(backupFlags.Dest); err != nil {
		return err
	}

	// Validate output format
	validOutputs := map[string]bool{
		"human": true,
		"json":  true,
	}
	if !validOutputs[backupFlags.Output] {
		return fmt.Errorf("invalid output format: %s (valid: human, json)", backupFlags.Output)
	}

	// Validate log format
	validLogFormats := map[string]bool{
		"text":   true,
		"json":   true,
		"logfmt": true,
	}
	if !validLogFormats[backupFlags.LogFormat] {
		return fmt.Errorf("invalid log format: %s (valid: text, json, logfmt)", backupFlags.LogFormat)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	// Recursion and parent creation
	if backupFlags.Recursive {
		cfg.Backup.Recursive = true
	}
	if backupFlags.MakeParents {
		cfg.Backup.MakeParents = true
	}

	// External client binary
	if backupFlags.DriveBinary != "" {
		cfg.Drive.Binary = backupFlags.DriveBinary
	}

	// Parallel workers (default: 5)
	if backupFlags.Parallel > 0 {
		cfg.Performance.MaxWorkers = backupFlags.Parallel
	} else if cfg.Performance.MaxWorkers == 0 {
		cfg.Performance.MaxWorkers = 5
	}

	// Exclude patterns
	if len(backupFlags.Exclude) > 0 {
		cfg.Exclude = backupFlags.Exclude
	}

	// Output format
	if backupFlags.Output != "" {
		cfg.Output.Format = backupFlags.Output
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createBackupOperation creates a backup operation from configuration
func createBackupOperation(cfg *config.Config) (*models.BackupOperation, error) {
	dest := backupFlags.Dest
	if !backupFlags.DestIsID {
		dest = platform.NormalizeDrivePath(dest)
	}

	operation := &models.BackupOperation{
		ID:              uuid.New().String(),
		SourcePath:      backupFlags.Source,
		DestPath:        dest,
		DestIsID:        backupFlags.DestIsID,
		Recursive:       cfg.Backup.Recursive,
		MakeParents:     cfg.Backup.MakeParents,
		DryRun:          backupFlags.DryRun,
		MaxWorkers:      cfg.Performance.MaxWorkers,
		ExcludePatterns: cfg.Exclude,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
