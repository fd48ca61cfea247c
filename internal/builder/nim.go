package builder

import (
	"path/filepath"

	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

type nimAdapter struct{}

func (a *nimAdapter) Language() string { return "nim" }

func (a *nimAdapter) Tools() []tool.Tool {
	return []tool.Tool{
		{Name: "nim", Category: tool.CategoryBuild},
		{Name: "nimble", Category: tool.CategoryBuild},
		{Name: "nph", Category: tool.CategoryDev},
	}
}

func (a *nimAdapter) Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error) {
	dir := targetDir(desc)
	out := filepath.Join(workspace, "bin", id.BinaryName)
	mainModule := filepath.Join("src", id.Name+".nim")

	compile := []string{"nim", "c", "--out:" + out, "--nimcache:" + filepath.Join(workspace, "nimcache")}
	if policy.DebugSymbols {
		compile = append(compile, "--debugger:native")
	}
	if policy.OptimizationLevel == OptMax {
		compile = append(compile, "-d:release", "--opt:speed")
	}
	compile = append(compile, mainModule)

	steps := []Step{{
		Phase:    PhaseCompile,
		Announce: hook.VersionProbe("nim", "Nim"),
		Command:  argvCmd(dir, policy.EnvOverrides, compile...),
	}}

	if policy.RunTests {
		test := []string{"nimble", "test"}
		test = append(test, desc.Tests.Args...)
		steps = append(steps, Step{
			Phase:    PhaseTest,
			Announce: hook.TestAnnounce(id.Name),
			Command:  argvCmd(dir, policy.EnvOverrides, test...),
		})
	}

	// nim c --out already targets the workspace; no install step.
	return steps, nil
}

func (a *nimAdapter) LintCommand(desc Descriptor) toolchain.Command {
	return argvCmd(targetDir(desc), nil, "nimble", "check")
}

func (a *nimAdapter) FormatCommand(desc Descriptor, check bool) toolchain.Command {
	if check {
		return argvCmd(targetDir(desc), nil, "nph", "--check", ".")
	}
	return argvCmd(targetDir(desc), nil, "nph", ".")
}
