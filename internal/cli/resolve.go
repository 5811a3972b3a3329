package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pilgrimtabby/gdrive-stash/internal/platform"
	"github.com/pilgrimtabby/gdrive-stash/pkg/gdrive"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var makeParents bool
	var driveBinary string

	cmd := &cobra.Command{
		Use:   "resolve DRIVE_PATH",
		Short: "Print the id of a drive directory",
		Long: `Resolve a drive path to its directory id. Backing up with an id
(backup --dest-is-id) skips crawling the path on every run, which is much
faster for deep paths. With --make-parents, missing directories on the path
are created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			drivePath := args[0]
			if err := platform.ValidateDrivePath(drivePath); err != nil {
				return err
			}
			if platform.IsDriveRoot(drivePath) {
				return fmt.Errorf("the drive root has no id; use \"/\" as a backup destination directly")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if driveBinary != "" {
				cfg.Drive.Binary = driveBinary
			}

			client, err := gdrive.NewClient(cfg.Drive.Binary)
			if err != nil {
				return err
			}

			resolver := remote.NewResolver(client)
			id, _, err := resolver.ResolveDir(ctx, drivePath, makeParents)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&makeParents, "make-parents", "p", false, "create missing directories in the path")
	cmd.Flags().StringVar(&driveBinary, "gdrive-bin", "", "name or path of the external drive client binary")

	return cmd
}
