package engine

import (
	"context"
	"sort"

	"github.com/glotlabs/glot/internal/builder"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/toolchain"
)

// CheckResult is one named pass/fail check outcome. The map of results is
// consumed by callers such as `glot check`; aggregation policy is theirs.
type CheckResult struct {
	Name   string
	Passed bool
	Output string
	Err    error
}

// Lint runs the language's lint command. Strictly read-only.
func (e *Engine) Lint(ctx context.Context, desc builder.Descriptor) (CheckResult, error) {
	adapter, err := e.adapters.Get(desc.Language)
	if err != nil {
		return CheckResult{}, err
	}
	return e.runCheck(ctx, "lint", adapter.LintCommand(desc)), nil
}

// CheckFormat verifies formatting without touching the source tree.
func (e *Engine) CheckFormat(ctx context.Context, desc builder.Descriptor) (CheckResult, error) {
	adapter, err := e.adapters.Get(desc.Language)
	if err != nil {
		return CheckResult{}, err
	}
	return e.runCheck(ctx, "check-format", adapter.FormatCommand(desc, true)), nil
}

// Format rewrites the source tree with the language formatter. This is the
// only engine operation allowed to mutate the source root.
func (e *Engine) Format(ctx context.Context, desc builder.Descriptor) (CheckResult, error) {
	adapter, err := e.adapters.Get(desc.Language)
	if err != nil {
		return CheckResult{}, err
	}
	return e.runCheck(ctx, "fmt", adapter.FormatCommand(desc, false)), nil
}

// Test runs the project's test suite in the pinned release environment
// without installing artifacts. The suite runs even when test detection
// found nothing; an explicit request overrides the heuristic. Compile steps
// still execute so test drivers that need prior build products have them.
func (e *Engine) Test(ctx context.Context, desc builder.Descriptor) (CheckResult, error) {
	adapter, err := e.adapters.Get(desc.Language)
	if err != nil {
		return CheckResult{}, err
	}

	id, err := identity.Resolve(desc.SourceRoot, desc.Language, desc.BuildTargetPath, desc.BinaryNameOverride)
	if err != nil {
		return CheckResult{}, err
	}

	ws, err := e.createWorkspace(desc, id.Name, builder.VariantRelease)
	if err != nil {
		return CheckResult{}, err
	}

	policy := builder.PolicyFor(builder.VariantRelease, true)
	steps, err := adapter.Plan(desc, id, policy, ws)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{Name: "test", Passed: true}
	for _, step := range steps {
		if step.Phase == builder.PhaseInstall {
			continue
		}
		res, err := e.runner.Run(ctx, step.Command)
		result.Output += res.Output
		if err != nil {
			result.Passed = false
			result.Err = err
			break
		}
	}
	return result, nil
}

// RunChecks runs the full check suite: format verification, lint, and both
// build variants (which include the release test run when the project has
// tests). All checks run even when earlier ones fail.
func (e *Engine) RunChecks(ctx context.Context, desc builder.Descriptor) ([]CheckResult, error) {
	var results []CheckResult

	check, err := e.CheckFormat(ctx, desc)
	if err != nil {
		return nil, err
	}
	results = append(results, check)

	lint, err := e.Lint(ctx, desc)
	if err != nil {
		return nil, err
	}
	results = append(results, lint)

	set, buildErr := e.Build(ctx, desc)
	if set == nil {
		// Identity or composition failure: no build was attempted.
		return results, buildErr
	}

	names := make([]string, 0, len(set.Checks))
	for name := range set.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res := set.Checks[name]
		results = append(results, CheckResult{
			Name:   name,
			Passed: res.Status == builder.StatusSuccess,
			Output: res.Output,
			Err:    res.Err,
		})
	}
	return results, nil
}

// runCheck executes a single command and folds it into a check result.
func (e *Engine) runCheck(ctx context.Context, name string, cmd toolchain.Command) CheckResult {
	res, err := e.runner.Run(ctx, cmd)
	return CheckResult{Name: name, Passed: err == nil, Output: res.Output, Err: err}
}
