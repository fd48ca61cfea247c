package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTestCommand creates the test command.
func NewTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [-- args...]",
		Short: "Run the project's test suite",
		Long: `Run the test suite in the pinned release environment without
installing artifacts. The suite runs even when no tests were detected,
so a freshly added suite is picked up immediately. Arguments after --
are appended to the test runner invocation.`,
		Example: `  # Run the test suite
  glot test

  # Pass arguments through to the test runner
  glot test -- --nocapture`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, args)
		},
	}
	return cmd
}

func runTest(cmd *cobra.Command, args []string) error {
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
	desc.Tests.Args = append(desc.Tests.Args, args...)

	res, err := eng.Test(cmd.Context(), desc)
	if err != nil {
		return err
	}

	if r.IsStructured() {
		rep := checkReport{Name: res.Name, Passed: res.Passed}
		if res.Err != nil {
			rep.Error = res.Err.Error()
		}
		if err := r.Structured(rep); err != nil {
			return err
		}
	} else {
		styles := r.Styles()
		if res.Output != "" {
			r.Println(styles.Muted.Render(res.Output))
		}
		if res.Passed {
			r.Printf("%s tests passed\n", styles.Success.Render("ok"))
		} else {
			r.Printf("%s tests failed\n", styles.Failure.Render("FAIL"))
		}
	}

	if !res.Passed {
		return fmt.Errorf("tests failed: %w", res.Err)
	}
	return nil
}
