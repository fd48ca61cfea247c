package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glotlabs/glot/internal/builder"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/state"
	"golang.org/x/sync/errgroup"
)

// Build runs both build variants for a descriptor and assembles the uniform
// output set. Identity and tool composition failures surface before any
// toolchain invocation. The two variant builds share no mutable state and
// run concurrently, each in its own isolated workspace; one variant's
// failure never suppresses the other's result.
func (e *Engine) Build(ctx context.Context, desc builder.Descriptor) (*builder.OutputSet, error) {
	adapter, err := e.adapters.Get(desc.Language)
	if err != nil {
		return nil, err
	}

	id, err := identity.Resolve(desc.SourceRoot, desc.Language, desc.BuildTargetPath, desc.BinaryNameOverride)
	if err != nil {
		return nil, err
	}
	e.logger.Info("resolved project identity",
		"name", id.Name, "binary", id.BinaryName, "has_tests", id.HasTests)

	toolSet, err := e.ComposeTools(desc)
	if err != nil {
		return nil, err
	}

	workspaces := make(map[builder.Variant]string, len(builder.Variants))
	for _, v := range builder.Variants {
		ws, err := e.createWorkspace(desc, id.Name, v)
		if err != nil {
			return nil, err
		}
		workspaces[v] = ws
	}

	started := time.Now().UTC()
	results := make(map[builder.Variant]builder.BuildResult, len(builder.Variants))

	// Both variants always run to completion: goroutines return nil so a
	// failing variant cannot cancel its sibling.
	var mu sync.Mutex
	var g errgroup.Group
	for _, v := range builder.Variants {
		v := v
		g.Go(func() error {
			policy := builder.PolicyFor(v, id.HasTests)
			res := e.core.BuildVariant(ctx, adapter, desc, id, policy, workspaces[v])
			mu.Lock()
			results[v] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	dev := results[builder.VariantDev]
	release := results[builder.VariantRelease]

	e.recordRun(id, desc, started, dev, release)

	lintApp := builder.App{Name: "lint", Command: adapter.LintCommand(desc)}
	formatApp := builder.App{Name: "check-format", Command: adapter.FormatCommand(desc, true)}

	set, err := builder.Assemble(id, toolSet, dev, release, lintApp, formatApp)
	if err != nil {
		return nil, err
	}

	return set, buildError(adapter.Language(), dev, release)
}

// VariantBuild couples a single variant's result with the identity the
// build resolved.
type VariantBuild struct {
	Identity *identity.Identity
	Result   builder.BuildResult
}

// AppPath returns the invocable program path inside the variant's artifact.
func (vb *VariantBuild) AppPath() string {
	return filepath.Join(vb.Result.Artifact.Path, "bin", vb.Identity.BinaryName)
}

// BuildVariant runs a single variant for a descriptor. The dev variant
// compiles without tests or environment pinning, which keeps rebuild loops
// such as `glot watch` fast; callers wanting the full output set use Build.
func (e *Engine) BuildVariant(ctx context.Context, desc builder.Descriptor, v builder.Variant) (*VariantBuild, error) {
	adapter, err := e.adapters.Get(desc.Language)
	if err != nil {
		return nil, err
	}

	id, err := identity.Resolve(desc.SourceRoot, desc.Language, desc.BuildTargetPath, desc.BinaryNameOverride)
	if err != nil {
		return nil, err
	}

	ws, err := e.createWorkspace(desc, id.Name, v)
	if err != nil {
		return nil, err
	}

	started := time.Now().UTC()
	policy := builder.PolicyFor(v, id.HasTests)
	res := e.core.BuildVariant(ctx, adapter, desc, id, policy, ws)
	e.recordRun(id, desc, started, res)

	return &VariantBuild{Identity: id, Result: res}, variantError(adapter.Language(), res)
}

// buildError folds per-variant failures into one error without hiding
// either variant's outcome (both remain visible in the output set).
func buildError(language string, dev, release builder.BuildResult) error {
	return errors.Join(variantError(language, dev), variantError(language, release))
}

// variantError converts a failed build result into its typed error. A test
// failure stays distinct from a compile failure so callers can surface the
// preserved artifact.
func variantError(language string, res builder.BuildResult) error {
	switch res.Status {
	case builder.StatusCompileFailure:
		return &builder.CompileError{
			Language: language, Variant: res.Variant, Output: res.Output, Err: res.Err,
		}
	case builder.StatusTestFailure:
		return &builder.TestError{
			Language: language, Artifact: res.Artifact.Path, Output: res.Output, Err: res.Err,
		}
	}
	return nil
}

// workspaceOutputDirs are the install destinations cleared before every
// build so a failed run never leaves a stale binary at the app path.
var workspaceOutputDirs = []string{"bin", "dist"}

// createWorkspace prepares the isolated build workspace for a variant. Dev
// and release never share a workspace, so caches and artifacts cannot
// cross-contaminate. Installed outputs from a previous run are removed;
// compiler caches elsewhere in the workspace persist so incremental rebuilds
// stay fast.
func (e *Engine) createWorkspace(desc builder.Descriptor, project string, v builder.Variant) (string, error) {
	ws := filepath.Join(e.workRootFor(desc), project, string(v))
	for _, dir := range workspaceOutputDirs {
		if err := os.RemoveAll(filepath.Join(ws, dir)); err != nil {
			return "", fmt.Errorf("failed to clear %s workspace outputs: %w", v, err)
		}
	}
	if err := os.MkdirAll(ws, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s workspace: %w", v, err)
	}
	return ws, nil
}

// recordRun persists both variant results. Recording is best effort: a
// history failure must not fail the build itself.
func (e *Engine) recordRun(id *identity.Identity, desc builder.Descriptor, started time.Time, results ...builder.BuildResult) {
	if e.store == nil {
		return
	}

	run, err := e.store.CreateRun(id.Name, desc.Language)
	if err != nil {
		e.logger.Warn("failed to record run", "error", err)
		return
	}

	for _, res := range results {
		errMsg := ""
		if res.Err != nil {
			errMsg = res.Err.Error()
		}
		rec := &state.BuildRecord{
			RunID:      run.ID,
			Project:    id.Name,
			Language:   desc.Language,
			Variant:    string(res.Variant),
			Status:     string(res.Status),
			StartedAt:  started,
			DurationMS: res.Duration.Milliseconds(),
			Error:      errMsg,
		}
		if err := e.store.RecordBuild(rec); err != nil {
			e.logger.Warn("failed to record build", "variant", res.Variant, "error", err)
		}
	}
}
