package config

import (
	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Backup      BackupConfig      `yaml:"backup"`
	Drive       DriveConfig       `yaml:"drive"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// BackupConfig holds backup-related settings
type BackupConfig struct {
	Recursive   bool `yaml:"recursive"`
	MakeParents bool `yaml:"make_parents"`
}

// DriveConfig holds settings for the external drive client
type DriveConfig struct {
	// Binary is the name (or path) of the external client executable
	Binary string `yaml:"binary"`
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	// MaxWorkers bounds how many child upload/delete processes run at once
	MaxWorkers int `yaml:"max_workers"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json", "text", or "logfmt"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Backup: BackupConfig{
			Recursive:   false,
			MakeParents: false,
		},
		Drive: DriveConfig{
			Binary: "gdrive",
		},
		Performance: PerformanceConfig{
			MaxWorkers: 5,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{
			".DS_Store",
			"*.tmp",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Drive.Binary == "" {
		return &models.ValidationError{
			Field:   "drive.binary",
			Message: "external client binary name is required",
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true, "logfmt": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json', 'text', or 'logfmt'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
