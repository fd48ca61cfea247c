package builder

import (
	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

type zigAdapter struct{}

func (a *zigAdapter) Language() string { return "zig" }

func (a *zigAdapter) Tools() []tool.Tool {
	return []tool.Tool{
		{Name: "zig", Category: tool.CategoryBuild},
		{Name: "zls", Category: tool.CategoryDev},
	}
}

func (a *zigAdapter) Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error) {
	dir := targetDir(desc)

	optimize := "-Doptimize=Debug"
	if policy.OptimizationLevel == OptMax {
		optimize = "-Doptimize=ReleaseFast"
	}

	// zig build installs into --prefix, so compile and install are one step.
	compile := []string{"zig", "build", optimize, "--prefix", workspace}

	steps := []Step{{
		Phase:    PhaseCompile,
		Announce: hook.VersionProbe("zig", "Zig"),
		Command:  argvCmd(dir, policy.EnvOverrides, compile...),
	}}

	if policy.RunTests {
		test := []string{"zig", "build", "test"}
		test = append(test, desc.Tests.Args...)
		steps = append(steps, Step{
			Phase:    PhaseTest,
			Announce: hook.TestAnnounce(id.Name),
			Command:  argvCmd(dir, policy.EnvOverrides, test...),
		})
	}
	return steps, nil
}

func (a *zigAdapter) LintCommand(desc Descriptor) toolchain.Command {
	return argvCmd(targetDir(desc), nil, "zig", "fmt", "--check", "--ast-check", ".")
}

func (a *zigAdapter) FormatCommand(desc Descriptor, check bool) toolchain.Command {
	if check {
		return argvCmd(targetDir(desc), nil, "zig", "fmt", "--check", ".")
	}
	return argvCmd(targetDir(desc), nil, "zig", "fmt", ".")
}
