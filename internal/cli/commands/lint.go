package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run the language linter",
		Long:  `Run the project's language linter. Lint never modifies the source tree.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLint(cmd)
		},
	}
	return cmd
}

func runLint(cmd *cobra.Command) error {
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

	res, err := eng.Lint(cmd.Context(), desc)
	if err != nil {
		return err
	}
	if res.Output != "" {
		r.Println(res.Output)
	}
	if !res.Passed {
		return fmt.Errorf("lint failed: %w", res.Err)
	}
	r.Println(r.Styles().Success.Render("ok"), "lint")
	return nil
}
