package commands

import (
	"fmt"

	"github.com/glotlabs/glot/internal/cli/output"
	"github.com/glotlabs/glot/internal/engine"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the full check suite",
		Long: `Run every project check: format verification, lint, the dev build,
and the release build (including tests when the project has a suite).

All checks run even when earlier ones fail. The command exits non-zero
if any check failed.`,
		Example: `  # Check the project in the current directory
  glot check

  # Check with JSON output
  glot check -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}
	return cmd
}

// checkReport is the JSON shape of one check run.
type checkReport struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command) error {
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

	results, err := eng.RunChecks(cmd.Context(), desc)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.Passed {
			failed++
		}
	}

	if r.IsStructured() {
		reports := make([]checkReport, 0, len(results))
		for _, res := range results {
			rep := checkReport{Name: res.Name, Passed: res.Passed}
			if res.Err != nil {
				rep.Error = res.Err.Error()
			}
			reports = append(reports, rep)
		}
		if err := r.Structured(reports); err != nil {
			return err
		}
	} else {
		renderCheckText(r, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

func renderCheckText(r *output.Renderer, results []engine.CheckResult) {
	styles := r.Styles()
	for _, res := range results {
		if res.Passed {
			r.Printf("%s %s\n", styles.Success.Render("ok"), res.Name)
			continue
		}
		r.Printf("%s %s\n", styles.Failure.Render("FAIL"), res.Name)
		if res.Output != "" {
			r.Println(styles.Muted.Render(res.Output))
		}
	}
}
