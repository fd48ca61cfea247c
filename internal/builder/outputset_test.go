package builder

import (
	"testing"

	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleFixture(t *testing.T, dev, release BuildResult) *OutputSet {
	t.Helper()

	id := &identity.Identity{Name: "demo", BinaryName: "demo"}
	toolSet := tool.Compose(
		[]tool.Tool{{Name: "git", Category: tool.CategoryGeneral, Origin: tool.OriginStandard}},
		[]tool.Tool{{Name: "cargo", Category: tool.CategoryBuild}},
		nil,
	)

	set, err := Assemble(id, toolSet, dev, release,
		App{Name: "lint"}, App{Name: "check-format"})
	require.NoError(t, err)
	return set
}

func devResult() BuildResult {
	return BuildResult{Variant: VariantDev, Status: StatusSuccess, Artifact: Artifact{Path: "/work/dev", Variant: VariantDev}}
}

func releaseResult() BuildResult {
	return BuildResult{Variant: VariantRelease, Status: StatusSuccess, Artifact: Artifact{Path: "/work/release", Variant: VariantRelease}}
}

func TestAssemble_DefaultAliasesDev(t *testing.T) {
	set := assembleFixture(t, devResult(), releaseResult())

	assert.Equal(t, set.Packages.Dev, set.Packages.Default, "packages.default must be structurally identical to packages.dev")
	assert.Equal(t, "/work/release", set.Packages.Release.Path)
}

func TestAssemble_DefaultAppPointsIntoDevArtifact(t *testing.T) {
	set := assembleFixture(t, devResult(), releaseResult())

	assert.Equal(t, "/work/dev/bin/demo", set.Apps.Default.Path)
	assert.Equal(t, set.Apps.Dev, set.Apps.Default)
	assert.Equal(t, "/work/release/bin/demo", set.Apps.Release.Path)
}

func TestAssemble_FailedReleaseDoesNotHideDevSuccess(t *testing.T) {
	failed := releaseResult()
	failed.Status = StatusTestFailure

	set := assembleFixture(t, devResult(), failed)

	assert.Equal(t, StatusSuccess, set.Checks["build-dev"].Status)
	assert.Equal(t, StatusTestFailure, set.Checks["build-release"].Status)
}

func TestAssemble_DevShellCarriesComposedTools(t *testing.T) {
	set := assembleFixture(t, devResult(), releaseResult())

	names := make([]string, len(set.DevShell.Tools))
	for i, tl := range set.DevShell.Tools {
		names[i] = tl.Name
	}
	assert.Equal(t, []string{"git", "cargo"}, names)
}

func TestAssemble_RejectsMismatchedVariants(t *testing.T) {
	id := &identity.Identity{Name: "demo", BinaryName: "demo"}
	toolSet := tool.Compose(nil, nil, nil)

	_, err := Assemble(id, toolSet, releaseResult(), releaseResult(), App{}, App{})
	require.Error(t, err)
}

func TestAssemble_FormatterMatchesCheckFormatApp(t *testing.T) {
	set := assembleFixture(t, devResult(), releaseResult())

	assert.Equal(t, set.Apps.CheckFormat, set.Formatter)
}
