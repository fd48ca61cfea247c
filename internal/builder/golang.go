package builder

import (
	"path/filepath"

	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

type goAdapter struct{}

func (a *goAdapter) Language() string { return "go" }

func (a *goAdapter) Tools() []tool.Tool {
	return []tool.Tool{
		{Name: "go", Category: tool.CategoryBuild},
		{Name: "gopls", Category: tool.CategoryDev},
		{Name: "golangci-lint", Category: tool.CategoryDev},
		{Name: "gofumpt", Category: tool.CategoryDev},
	}
}

func (a *goAdapter) Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error) {
	dir := targetDir(desc)
	out := filepath.Join(workspace, "bin", id.BinaryName)

	build := []string{"go", "build", "-o", out}
	env := map[string]string{}
	for k, v := range policy.EnvOverrides {
		env[k] = v
	}
	if policy.DebugSymbols {
		// Keep the binary debuggable: no inlining, no register allocation.
		build = append(build, "-gcflags", "all=-N -l")
	}
	if policy.OptimizationLevel == OptMax {
		build = append(build, "-ldflags", "-s -w")
	}
	if policy.Deterministic {
		build = append(build, "-trimpath")
		env["GOFLAGS"] = "-mod=readonly"
	}
	build = append(build, ".")

	steps := []Step{{
		Phase:    PhaseCompile,
		Announce: hook.VersionProbe("go", "Go"),
		Command:  argvCmd(dir, env, build...),
	}}

	if policy.RunTests {
		test := []string{"go", "test"}
		test = append(test, desc.Tests.Args...)
		test = append(test, "./...")
		steps = append(steps, Step{
			Phase:    PhaseTest,
			Announce: hook.TestAnnounce(id.Name),
			Command:  argvCmd(dir, env, test...),
		})
	}

	// go build -o already wrote into the workspace; no separate install step.
	return steps, nil
}

func (a *goAdapter) LintCommand(desc Descriptor) toolchain.Command {
	return argvCmd(targetDir(desc), nil, "golangci-lint", "run")
}

func (a *goAdapter) FormatCommand(desc Descriptor, check bool) toolchain.Command {
	if check {
		// gofumpt -l lists unformatted files; the wrapper fails when any exist.
		return shCmd(targetDir(desc), nil, `out="$(gofumpt -l .)"; test -z "$out" || { echo "$out"; exit 1; }`)
	}
	return argvCmd(targetDir(desc), nil, "gofumpt", "-w", ".")
}
