package builder

import (
	"fmt"
	"path/filepath"

	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

// App is a directly invocable program path requiring no arguments for its
// default behavior.
type App struct {
	Name    string
	Path    string
	Args    []string
	Command toolchain.Command
}

// Packages groups the per-variant artifacts. Default always aliases Dev.
type Packages struct {
	Default Artifact
	Dev     Artifact
	Release Artifact
}

// Apps groups the invocable entry points of an output set.
type Apps struct {
	Default     App
	Dev         App
	Release     App
	Lint        App
	CheckFormat App
}

// DevShell describes the composed development environment.
type DevShell struct {
	Tools []tool.Tool
}

// OutputSet is the uniform bundle every language builder produces: artifacts,
// runnable commands, checks, and a dev environment.
type OutputSet struct {
	DevShell  DevShell
	Packages  Packages
	Apps      Apps
	Checks    map[string]BuildResult
	Formatter App
}

// Assemble normalizes build results into the uniform output set. It is pure
// structural composition: no I/O, no toolchain calls.
//
// Invariants enforced here: Packages.Default is identical to Packages.Dev,
// and Apps.Default points into Packages.Dev's artifact.
func Assemble(id *identity.Identity, toolSet *tool.Set, dev, release BuildResult, lintApp, formatApp App) (*OutputSet, error) {
	if id == nil {
		return nil, fmt.Errorf("assemble: identity is required")
	}
	if toolSet == nil {
		return nil, fmt.Errorf("assemble: tool set is required")
	}
	if dev.Variant != VariantDev || release.Variant != VariantRelease {
		return nil, fmt.Errorf("assemble: results must be one dev and one release variant")
	}

	devApp := App{
		Name: id.BinaryName,
		Path: filepath.Join(dev.Artifact.Path, "bin", id.BinaryName),
	}
	releaseApp := App{
		Name: id.BinaryName,
		Path: filepath.Join(release.Artifact.Path, "bin", id.BinaryName),
	}

	return &OutputSet{
		DevShell: DevShell{Tools: toolSet.Tools()},
		Packages: Packages{
			Default: dev.Artifact,
			Dev:     dev.Artifact,
			Release: release.Artifact,
		},
		Apps: Apps{
			Default:     devApp,
			Dev:         devApp,
			Release:     releaseApp,
			Lint:        lintApp,
			CheckFormat: formatApp,
		},
		Checks: map[string]BuildResult{
			"build-dev":     dev,
			"build-release": release,
		},
		Formatter: formatApp,
	}, nil
}
