package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Check bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format the source tree",
		Long: `Run the language formatter over the source tree.

With --check the formatter verifies formatting without modifying any file
and exits non-zero when sources are unformatted.`,
		Example: `  # Format in place
  glot fmt

  # Verify formatting only (CI)
  glot fmt --check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFmt(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "Verify formatting without modifying files")

	return cmd
}

func runFmt(cmd *cobra.Command, opts *FmtOptions) error {
	cfg := getConfig()
	logger := newLogger(cfg)
	r := newRenderer(cmd, cfg)

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	desc, err := descriptorFor(cfg)
	if err != nil {
		return err
	}

	run := eng.Format
	if opts.Check {
		run = eng.CheckFormat
	}
	res, err := run(cmd.Context(), desc)
	if err != nil {
		return err
	}

	if res.Output != "" {
		r.Println(res.Output)
	}
	if !res.Passed {
		if opts.Check {
			return fmt.Errorf("sources are not formatted: %w", res.Err)
		}
		return fmt.Errorf("format failed: %w", res.Err)
	}
	return nil
}
