package builder

import (
	"path/filepath"

	"github.com/glotlabs/glot/internal/hook"
	"github.com/glotlabs/glot/internal/identity"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

type cppAdapter struct{}

func (a *cppAdapter) Language() string { return "cpp" }

func (a *cppAdapter) Tools() []tool.Tool {
	return []tool.Tool{
		{Name: "cmake", Category: tool.CategoryBuild},
		{Name: "ninja", Category: tool.CategoryBuild},
		{Name: "gcc", Category: tool.CategoryBuild},
		{Name: "clang-tools", Category: tool.CategoryDev},
		{Name: "cppcheck", Category: tool.CategoryDev},
	}
}

func (a *cppAdapter) Plan(desc Descriptor, id *identity.Identity, policy Policy, workspace string) ([]Step, error) {
	dir := targetDir(desc)
	buildDir := filepath.Join(workspace, "build")

	buildType := "Debug"
	if policy.OptimizationLevel == OptMax {
		buildType = "Release"
	}

	configure := []string{
		"cmake", "-S", ".", "-B", buildDir,
		"-G", "Ninja",
		"-DCMAKE_BUILD_TYPE=" + buildType,
	}
	if policy.RunTests {
		configure = append(configure, "-DBUILD_TESTING=ON")
	}

	steps := []Step{
		{
			Phase:    PhaseCompile,
			Announce: hook.VersionProbe("cmake", "CMake"),
			Command:  argvCmd(dir, policy.EnvOverrides, configure...),
		},
		{
			Phase:   PhaseCompile,
			Command: argvCmd(dir, policy.EnvOverrides, "cmake", "--build", buildDir),
		},
	}

	if policy.RunTests {
		test := []string{"ctest", "--test-dir", buildDir, "--output-on-failure"}
		test = append(test, desc.Tests.Args...)
		steps = append(steps, Step{
			Phase:    PhaseTest,
			Announce: hook.TestAnnounce(id.Name),
			Command:  argvCmd(dir, policy.EnvOverrides, test...),
		})
	}

	steps = append(steps, Step{
		Phase:   PhaseInstall,
		Command: argvCmd(dir, policy.EnvOverrides, "cmake", "--install", buildDir, "--prefix", workspace),
	})
	return steps, nil
}

func (a *cppAdapter) LintCommand(desc Descriptor) toolchain.Command {
	return argvCmd(targetDir(desc), nil, "cppcheck", "--enable=warning", "--error-exitcode=1", ".")
}

func (a *cppAdapter) FormatCommand(desc Descriptor, check bool) toolchain.Command {
	script := `find . -path ./build -prune -o \( -name '*.cpp' -o -name '*.hpp' -o -name '*.h' \) -print | xargs -r clang-format`
	if check {
		return shCmd(targetDir(desc), nil, script+" --dry-run --Werror")
	}
	return shCmd(targetDir(desc), nil, script+" -i")
}
