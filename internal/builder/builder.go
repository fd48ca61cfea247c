// Package builder turns a project descriptor into a uniform output set.
// Each supported language contributes one Adapter; the shared build core
// composes tools, applies variant policies, invokes the native toolchain,
// and classifies failures the same way for every language.
package builder

import (
	"context"
	"log/slog"
	"time"

	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

// TestConfig carries user-supplied test invocation settings.
type TestConfig struct {
	// Args are extra arguments appended to the test command
	Args []string
}

// Descriptor describes one project build request. Immutable per invocation.
type Descriptor struct {
	// SourceRoot is the project source tree root
	SourceRoot string

	// Language is the language tag (rust, go, python, csharp, nim, zig, cpp)
	Language string

	// BuildTargetPath is the path of the build target relative to SourceRoot
	BuildTargetPath string

	// BinaryNameOverride, when set, is used verbatim as the binary name
	BinaryNameOverride string

	// ExtraTools are user-supplied tools appended to the dev environment
	ExtraTools []string

	// Tests configures test invocation
	Tests TestConfig
}

// Phase identifies a build lifecycle phase.
type Phase string

const (
	PhaseCompile Phase = "compile"
	PhaseTest    Phase = "test"
	PhaseInstall Phase = "install"
)

// Step is one toolchain invocation within a variant build plan.
type Step struct {
	Phase    Phase
	Announce string
	Command  toolchain.Command
}

// Adapter is the per-language capability: it contributes the language's
// tools and plans native toolchain invocations for a variant. Adding a
// language means adding one adapter; the build core never changes.
type Adapter interface {
	// Language returns the language tag this adapter handles.
	Language() string

	// Tools returns the language-specific toolchain and linters.
	Tools() []tool.Tool

	// Plan returns the ordered toolchain steps for one variant build.
	// Build outputs must land in workspace, never in the source tree.
	Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error)

	// LintCommand returns the read-only lint invocation.
	LintCommand(desc Descriptor) toolchain.Command

	// FormatCommand returns the format invocation. With check set the
	// command must be read-only and fail on unformatted sources.
	FormatCommand(desc Descriptor, check bool) toolchain.Command
}

// Artifact is the installed output of one variant build.
type Artifact struct {
	// Path is the artifact install root
	Path string

	// Variant records which variant produced the artifact
	Variant Variant
}

// BuildResult is the outcome of one variant build.
type BuildResult struct {
	Variant  Variant
	Status   Status
	Artifact Artifact
	Output   string
	Duration time.Duration
	Err      error
}

// Builder executes variant builds through an adapter.
type Builder struct {
	runner toolchain.Runner
	logger *slog.Logger
}

// New creates a build core. A nil logger discards log output.
func New(runner toolchain.Runner, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{runner: runner, logger: logger}
}

// BuildVariant runs one variant build plan and classifies the outcome.
// A compile or install failure yields StatusCompileFailure. A test failure
// after a successful compile yields StatusTestFailure with the artifact
// preserved for inspection. Failures are never retried.
func (b *Builder) BuildVariant(ctx context.Context, adapter Adapter, desc Descriptor, id *identity.Identity, policy Policy, workspace string) BuildResult {
	result := BuildResult{
		Variant:  policy.Variant,
		Status:   StatusSuccess,
		Artifact: Artifact{Path: workspace, Variant: policy.Variant},
	}

	steps, err := adapter.Plan(desc, id, policy, workspace)
	if err != nil {
		result.Status = StatusCompileFailure
		result.Err = err
		return result
	}

	b.logger.Debug("starting variant build",
		"language", adapter.Language(), "variant", policy.Variant, "project", id.Name)
	b.logger.Info(hook.SystemInfo())
	b.logger.Info(hook.BuildAnnounce(adapter.Language(), string(policy.Variant), id.Name))

	start := time.Now()
	for _, step := range steps {
		if step.Announce != "" {
			b.logger.Info(step.Announce)
		}

		res, err := b.runner.Run(ctx, step.Command)
		result.Output += res.Output

		if err != nil {
			result.Duration = time.Since(start)
			result.Err = err
			if step.Phase == PhaseTest {
				// Compile succeeded, correctness regressed: the artifact
				// stays available, distinct from a compile failure.
				result.Status = StatusTestFailure
			} else {
				result.Status = StatusCompileFailure
			}
			b.logger.Debug("variant build failed",
				"variant", policy.Variant, "phase", step.Phase, "error", err)
			return result
		}
	}

	result.Duration = time.Since(start)
	b.logger.Info(hook.InstallAnnounce(id.Name, result.Artifact.Path))
	return result
}
