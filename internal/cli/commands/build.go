package commands

import (
	"fmt"
	"time"

	"github.com/glotlabs/glot/internal/builder"
	"github.com/glotlabs/glot/internal/cli/output"
	"github.com/spf13/cobra"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	JSONOutput bool
	Release    bool
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build [target]",
		Short: "Build the dev and release variants",
		Long: `Build both variants of the project.

The dev variant compiles fast with debug symbols and never runs tests.
The release variant compiles with maximum optimization in a pinned,
deterministic environment and runs the test suite when the project has one.
Each variant builds in its own isolated workspace.

The optional target argument selects a build target subdirectory, the
same as --build-target-path.`,
		Example: `  # Build the project in the current directory
  glot build

  # Build a rust project elsewhere
  glot build -C ../service -l rust

  # Build a subdirectory target
  glot build tools/cli

  # Build with JSON output for CI
  glot build --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.JSONOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.Release, "release", false, "Report only the release variant")

	return cmd
}

// buildReport is the JSON shape of one build invocation.
type buildReport struct {
	Project  string          `json:"project"`
	Language string          `json:"language"`
	Variants []variantReport `json:"variants"`
}

type variantReport struct {
	Variant    string `json:"variant"`
	Status     string `json:"status"`
	Artifact   string `json:"artifact,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

func runBuild(cmd *cobra.Command, opts *BuildOptions, args []string) error {
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
	if len(args) == 1 {
		desc.BuildTargetPath = args[0]
	}

	startTime := time.Now()
	set, buildErr := eng.Build(cmd.Context(), desc)
	if set == nil {
		return buildErr
	}

	if opts.JSONOutput {
		if err := r.JSON(reportFromSet(desc.Language, set)); err != nil {
			return err
		}
		return buildErr
	}
	if r.IsStructured() {
		if err := r.Structured(reportFromSet(desc.Language, set)); err != nil {
			return err
		}
		return buildErr
	}

	renderBuildText(r, set, time.Since(startTime), opts.Release)
	return buildErr
}

func reportFromSet(language string, set *builder.OutputSet) buildReport {
	report := buildReport{
		Project:  set.Apps.Default.Name,
		Language: language,
	}
	for _, name := range []string{"build-dev", "build-release"} {
		res := set.Checks[name]
		vr := variantReport{
			Variant:    string(res.Variant),
			Status:     string(res.Status),
			DurationMS: res.Duration.Milliseconds(),
		}
		if res.Status != builder.StatusCompileFailure {
			vr.Artifact = res.Artifact.Path
		}
		if res.Err != nil {
			vr.Error = res.Err.Error()
		}
		report.Variants = append(report.Variants, vr)
	}
	return report
}

func renderBuildText(r *output.Renderer, set *builder.OutputSet, elapsed time.Duration, releaseOnly bool) {
	styles := r.Styles()

	names := []string{"build-dev", "build-release"}
	if releaseOnly {
		names = []string{"build-release"}
	}
	for _, name := range names {
		res := set.Checks[name]
		switch res.Status {
		case builder.StatusSuccess:
			r.Printf("%s %s (%s)\n", styles.Success.Render("ok"), name, res.Artifact.Path)
		case builder.StatusTestFailure:
			r.Printf("%s %s: tests failed, artifact preserved at %s\n",
				styles.Failure.Render("FAIL"), name, res.Artifact.Path)
		default:
			r.Printf("%s %s: %v\n", styles.Failure.Render("FAIL"), name, res.Err)
		}
		if res.Status != builder.StatusSuccess && res.Output != "" {
			r.Println(styles.Muted.Render(res.Output))
		}
	}

	r.Println(styles.Muted.Render(fmt.Sprintf("completed in %s", elapsed.Round(time.Millisecond))))
}
