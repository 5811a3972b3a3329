package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pilgrimtabby/gdrive-stash/pkg/gdrive"
	"github.com/pilgrimtabby/gdrive-stash/pkg/logging"
	"github.com/pilgrimtabby/gdrive-stash/pkg/output"
	"github.com/pilgrimtabby/gdrive-stash/pkg/stash"
	"github.com/pilgrimtabby/gdrive-stash/pkg/storage"
)

// BackupFlags holds backup command flags
type BackupFlags struct {
	Source      string
	Dest        string
	Recursive   bool
	MakeParents bool
	DestIsID    bool
	DryRun      bool
	Parallel    int
	Exclude     []string
	Output      string
	DriveBinary string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var backupFlags BackupFlags

// NewBackupCommand creates the backup command
func NewBackupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up a local directory to a drive directory",
		Long: `Back up the files of a local directory into a drive directory by
invoking the external drive client. New files are uploaded, files whose local
modification time is newer than the remote upload time are replaced, and
everything else is skipped. With --recursive, subdirectories are backed up
too, creating remote directories as needed.

The destination is a drive path starting with "/" ("/" alone is the drive
root), or a raw directory id with --dest-is-id, which avoids crawling the
path on every run.`,
		Example: `  gdrive-stash backup -s ~/tools -d /
  gdrive-stash backup -s ~/tools -d "/my backups/tools" -r -p
  gdrive-stash backup -s ~/tools -d 1Fn7xLIHE_iIY8o5MHbjQaAX20PdnE0ZD -r -i`,
		RunE: runBackup,
	}

	// Required flags
	cmd.Flags().StringVarP(&backupFlags.Source, "source", "s", "", "local directory to back up (required)")
	cmd.Flags().StringVarP(&backupFlags.Dest, "dest", "d", "", "drive path or directory id (required)")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("dest")

	// Optional flags
	cmd.Flags().BoolVarP(&backupFlags.Recursive, "recursive", "r", false, "recursively back up subdirectories")
	cmd.Flags().BoolVarP(&backupFlags.MakeParents, "make-parents", "p", false, "create missing directories in the destination path")
	cmd.Flags().BoolVarP(&backupFlags.DestIsID, "dest-is-id", "i", false, "treat the destination as a drive directory id, not a path")
	cmd.Flags().BoolVar(&backupFlags.DryRun, "dry-run", false, "report what would be done without invoking uploads")
	cmd.Flags().IntVar(&backupFlags.Parallel, "parallel", 0, "number of parallel upload processes (default: 5)")
	cmd.Flags().StringSliceVar(&backupFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&backupFlags.Output, "output", "o", "human", "output format: human, json")
	cmd.Flags().StringVar(&backupFlags.DriveBinary, "gdrive-bin", "", "name or path of the external drive client binary")

	// Logging flags
	cmd.Flags().StringVar(&backupFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&backupFlags.LogFormat, "log-format", "text", "log format: text, json, logfmt")
	cmd.Flags().StringVar(&backupFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	if err := validateBackupFlags(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)

	// Create backup operation
	operation, err := createBackupOperation(cfg)
	if err != nil {
		return fmt.Errorf("failed to create backup operation: %w", err)
	}

	// Create the local backend rooted at the source directory
	local, err := storage.NewLocal(backupFlags.Source)
	if err != nil {
		return fmt.Errorf("failed to open source directory: %w", err)
	}
	defer local.Close()

	// Create the external client wrapper (fails fast when the binary is
	// missing from PATH)
	drive, err := gdrive.NewClient(cfg.Drive.Binary)
	if err != nil {
		return err
	}

	// Create output formatter
	var formatter output.Formatter
	switch backupFlags.Output {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		if cfg.Output.Progress {
			formatter = output.NewProgressFormatter()
		} else {
			formatter = output.NewHumanFormatter()
		}
	}

	// Create logger
	logger, err := createLogger(backupFlags.LogFile, backupFlags.LogFormat, backupFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create the engine and run
	engine := stash.NewEngine(local, drive, formatter, logger, operation)

	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	case "logfmt":
		format = logging.FormatLogfmt
	default:
		format = logging.FormatText
	}

	config := logging.FileLoggerConfig{
		Path:       logFile,
		Format:     format,
		Level:      logging.ParseLevel(logLevel),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(config)
}
