package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pilgrimtabby/gdrive-stash/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "gdrive-stash",
		Short: "Back up local directories to your drive from the command line",
		Long: `gdrive-stash quickly and easily backs up local files and directories
to your drive from the command line. It delegates authentication and data
transfer to the external drive client and only decides, per file, whether to
upload, replace, or skip.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewBackupCommand())
	rootCmd.AddCommand(cli.NewResolveCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
