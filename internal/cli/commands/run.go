package commands

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/glotlabs/glot/internal/builder"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Build the dev variant and run the project binary",
		Long: `Build the dev variant and execute the resulting binary with the
project source root as its working directory. Arguments after -- are
passed through to the binary; its stdin, stdout, and stderr are wired
to the terminal.`,
		Example: `  # Build and run the project in the current directory
  glot run

  # Pass arguments through to the binary
  glot run -- --port 8080`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args)
		},
	}
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	logger := newLogger(cfg)

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	desc, err := descriptorFor(cfg)
	if err != nil {
		return err
	}

	vb, err := eng.BuildVariant(cmd.Context(), desc, builder.VariantDev)
	if err != nil {
		return err
	}

	bin := vb.AppPath()
	c := exec.CommandContext(cmd.Context(), bin, args...)
	c.Dir = desc.SourceRoot
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(bin), err)
	}
	return nil
}
