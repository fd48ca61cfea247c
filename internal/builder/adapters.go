package builder

import (
	"path/filepath"

	"github.com/glotlabs/glot/internal/toolchain"
)

// targetDir returns the directory holding the build target's manifest.
func targetDir(desc Descriptor) string {
	if desc.BuildTargetPath == "" {
		return desc.SourceRoot
	}
	return filepath.Join(desc.SourceRoot, desc.BuildTargetPath)
}

// argvCmd builds a plain argv toolchain command.
func argvCmd(dir string, env map[string]string, argv ...string) toolchain.Command {
	return toolchain.Command{Argv: argv, Dir: dir, Env: env}
}

// shCmd wraps a shell script so adapters can express multi-command phases
// (mkdir + copy installs) as a single step.
func shCmd(dir string, env map[string]string, script string) toolchain.Command {
	return toolchain.Command{Argv: []string{"sh", "-c", script}, Dir: dir, Env: env}
}

// installCopy returns the install step script copying a built binary into the
// workspace bin directory.
func installCopy(src, workspace, binary string) string {
	dst := filepath.Join(workspace, "bin", binary)
	return "mkdir -p " + filepath.Join(workspace, "bin") + " && cp " + src + " " + dst
}
