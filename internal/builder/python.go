package builder

import (
	"path/filepath"
	"strings"

	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

type pythonAdapter struct{}

func (a *pythonAdapter) Language() string { return "python" }

func (a *pythonAdapter) Tools() []tool.Tool {
	return []tool.Tool{
		{Name: "python3", Category: tool.CategoryBuild},
		{Name: "uv", Category: tool.CategoryBuild},
		{Name: "ruff", Category: tool.CategoryDev},
		{Name: "pytest", Category: tool.CategoryDev},
	}
}

func (a *pythonAdapter) Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error) {
	dir := targetDir(desc)

	var steps []Step
	if policy.OptimizationLevel == OptMax {
		// Release: build a wheel into the isolated workspace.
		env := map[string]string{}
		for k, v := range policy.EnvOverrides {
			env[k] = v
		}
		if policy.Deterministic {
			env["PYTHONHASHSEED"] = "0"
		}
		steps = append(steps, Step{
			Phase:    PhaseCompile,
			Announce: hook.VersionProbe("python3", "Python"),
			Command: argvCmd(dir, env, "python3", "-m", "build", "--wheel",
				"--outdir", filepath.Join(workspace, "dist")),
		})
	} else {
		// Dev: byte-compile in place for fast syntax verification.
		steps = append(steps, Step{
			Phase:    PhaseCompile,
			Announce: hook.VersionProbe("python3", "Python"),
			Command:  argvCmd(dir, policy.EnvOverrides, "python3", "-m", "compileall", "-q", "."),
		})
	}

	if policy.RunTests {
		test := []string{"pytest"}
		test = append(test, desc.Tests.Args...)
		steps = append(steps, Step{
			Phase:    PhaseTest,
			Announce: hook.TestAnnounce(id.Name),
			Command:  argvCmd(dir, policy.EnvOverrides, test...),
		})
	}

	// Expose the entry point as a runnable app in the workspace. The module
	// name follows wheel normalization: hyphens in the project name become
	// underscores in the importable package.
	module := strings.ReplaceAll(id.Name, "-", "_")
	launcher := filepath.Join(workspace, "bin", id.BinaryName)
	script := "mkdir -p " + filepath.Join(workspace, "bin") +
		" && printf '#!/bin/sh\\nexec python3 -m " + module + " \"$@\"\\n' > " + launcher +
		" && chmod +x " + launcher
	steps = append(steps, Step{
		Phase:   PhaseInstall,
		Command: shCmd(dir, policy.EnvOverrides, script),
	})
	return steps, nil
}

func (a *pythonAdapter) LintCommand(desc Descriptor) toolchain.Command {
	return argvCmd(targetDir(desc), nil, "ruff", "check", ".")
}

func (a *pythonAdapter) FormatCommand(desc Descriptor, check bool) toolchain.Command {
	if check {
		return argvCmd(targetDir(desc), nil, "ruff", "format", "--check", ".")
	}
	return argvCmd(targetDir(desc), nil, "ruff", "format", ".")
}
