package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// CleanOptions holds options for the clean command.
type CleanOptions struct {
	State bool
}

// NewCleanCommand creates the clean command.
func NewCleanCommand() *cobra.Command {
	opts := &CleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build workspaces",
		Long: `Remove the project's build workspaces. The source tree is never
touched; only the isolated workspace directory is deleted.

With --state the build history database is removed as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClean(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.State, "state", false, "Also remove the build history database")

	return cmd
}

func runClean(cmd *cobra.Command, opts *CleanOptions) error {
	cfg := getConfig()
	r := newRenderer(cmd, cfg)

	if err := os.RemoveAll(cfg.WorkDir); err != nil {
		return fmt.Errorf("failed to remove workspaces: %w", err)
	}
	r.Println("removed", cfg.WorkDir)

	if opts.State {
		if err := os.Remove(cfg.StatePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove state database: %w", err)
		}
		r.Println("removed", cfg.StatePath)
	}
	return nil
}
