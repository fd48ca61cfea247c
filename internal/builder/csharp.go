package builder

import (
	"path/filepath"

	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

type csharpAdapter struct{}

func (a *csharpAdapter) Language() string { return "csharp" }

func (a *csharpAdapter) Tools() []tool.Tool {
	return []tool.Tool{
		{Name: "dotnet-sdk", Category: tool.CategoryBuild},
		{Name: "csharpier", Category: tool.CategoryDev},
	}
}

func (a *csharpAdapter) Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error) {
	dir := targetDir(desc)
	out := filepath.Join(workspace, "bin")

	var compile []string
	if policy.OptimizationLevel == OptMax {
		compile = []string{
			"dotnet", "publish", "-c", "Release", "-o", out,
			"/p:DebugType=none",
		}
		if policy.Deterministic {
			compile = append(compile,
				"/p:Deterministic=true",
				"/p:ContinuousIntegrationBuild=true",
			)
		}
	} else {
		compile = []string{"dotnet", "build", "-c", "Debug", "-o", out}
	}

	steps := []Step{{
		Phase:    PhaseCompile,
		Announce: hook.VersionProbe("dotnet", ".NET SDK"),
		Command:  argvCmd(dir, policy.EnvOverrides, compile...),
	}}

	if policy.RunTests {
		test := []string{"dotnet", "test", "-c", "Release"}
		test = append(test, desc.Tests.Args...)
		steps = append(steps, Step{
			Phase:    PhaseTest,
			Announce: hook.TestAnnounce(id.Name),
			Command:  argvCmd(dir, policy.EnvOverrides, test...),
		})
	}

	// dotnet wrote directly into the workspace bin; no copy step needed.
	return steps, nil
}

func (a *csharpAdapter) LintCommand(desc Descriptor) toolchain.Command {
	return argvCmd(targetDir(desc), nil, "dotnet", "format", "analyzers", "--verify-no-changes")
}

func (a *csharpAdapter) FormatCommand(desc Descriptor, check bool) toolchain.Command {
	if check {
		return argvCmd(targetDir(desc), nil, "dotnet", "format", "--verify-no-changes")
	}
	return argvCmd(targetDir(desc), nil, "dotnet", "format")
}
