package builder

import (
	"path/filepath"

	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

type rustAdapter struct{}

func (a *rustAdapter) Language() string { return "rust" }

func (a *rustAdapter) Tools() []tool.Tool {
	return []tool.Tool{
		{Name: "rustc", Category: tool.CategoryBuild},
		{Name: "cargo", Category: tool.CategoryBuild},
		{Name: "clippy", Category: tool.CategoryDev},
		{Name: "rustfmt", Category: tool.CategoryDev},
		{Name: "rust-analyzer", Category: tool.CategoryDev},
	}
}

func (a *rustAdapter) Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error) {
	dir := targetDir(desc)
	cargoTarget := filepath.Join(workspace, "target")

	build := []string{"cargo", "build", "--target-dir", cargoTarget}
	profile := "debug"
	if policy.OptimizationLevel == OptMax {
		build = append(build, "--release")
		profile = "release"
	}
	if policy.Deterministic {
		// Frozen dependency mode: the lockfile is authoritative.
		build = append(build, "--locked")
	}

	steps := []Step{{
		Phase:    PhaseCompile,
		Announce: hook.VersionProbe("cargo", "Cargo"),
		Command:  argvCmd(dir, policy.EnvOverrides, build...),
	}}

	if policy.RunTests {
		test := []string{"cargo", "test", "--release", "--locked", "--target-dir", cargoTarget}
		test = append(test, desc.Tests.Args...)
		steps = append(steps, Step{
			Phase:    PhaseTest,
			Announce: hook.TestAnnounce(id.Name),
			Command:  argvCmd(dir, policy.EnvOverrides, test...),
		})
	}

	built := filepath.Join(cargoTarget, profile, id.BinaryName)
	steps = append(steps, Step{
		Phase:   PhaseInstall,
		Command: shCmd(dir, policy.EnvOverrides, installCopy(built, workspace, id.BinaryName)),
	})
	return steps, nil
}

func (a *rustAdapter) LintCommand(desc Descriptor) toolchain.Command {
	return argvCmd(targetDir(desc), nil, "cargo", "clippy", "--", "-D", "warnings")
}

func (a *rustAdapter) FormatCommand(desc Descriptor, check bool) toolchain.Command {
	if check {
		return argvCmd(targetDir(desc), nil, "cargo", "fmt", "--check")
	}
	return argvCmd(targetDir(desc), nil, "cargo", "fmt")
}
