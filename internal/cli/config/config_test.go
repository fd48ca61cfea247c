package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlags replicates the root command's persistent flag set.
func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project-dir", "", "")
	flags.String("language", "", "")
	flags.String("build-target-path", "", "")
	flags.String("binary-name", "", "")
	flags.StringSlice("extra-tools", nil, "")
	flags.String("state", "", "")
	flags.String("work-dir", "", "")
	flags.Bool("verbose", false, "")
	flags.String("output", "", "")
	return flags
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "glot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Language)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, DefaultWorkDir), cfg.WorkDir)
}

func TestLoadConfig_FromFile(t *testing.T) {
	defer ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, `
language: rust
binary_name: demo-cli
extra_tools:
  - tokei
  - hyperfine
tool_categories:
  - general
  - build
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "rust", cfg.Language)
	assert.Equal(t, "demo-cli", cfg.BinaryName)
	assert.Equal(t, []string{"tokei", "hyperfine"}, cfg.ExtraTools)
	assert.Equal(t, []string{"general", "build"}, cfg.ToolCategories)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	defer ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "language: rust\n")
	t.Setenv("GLOT_LANGUAGE", "zig")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "zig", cfg.Language)
}

func TestLoadConfig_EnvCommaListDecodesToSlice(t *testing.T) {
	defer ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GLOT_EXTRA_TOOLS", "tokei,hyperfine")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tokei", "hyperfine"}, cfg.ExtraTools)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	defer ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GLOT_LANGUAGE", "zig")

	flags := newFlags()
	require.NoError(t, flags.Set("language", "nim"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "nim", cfg.Language)
}

func TestLoadConfig_StateFlagMapsToStatePath(t *testing.T) {
	defer ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	flags := newFlags()
	require.NoError(t, flags.Set("state", "/tmp/custom/state.db"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom/state.db", cfg.StatePath)
}

func TestLoadConfig_UpwardSearchFindsProjectRoot(t *testing.T) {
	defer ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "language: go\n")
	nested := filepath.Join(root, "internal", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "go", cfg.Language)
	// macOS temp dirs resolve through symlinks, so compare by suffix-free
	// stat identity instead of string equality.
	rootInfo, err := os.Stat(root)
	require.NoError(t, err)
	foundInfo, err := os.Stat(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.True(t, os.SameFile(rootInfo, foundInfo))
}

func TestLoadConfig_ExplicitFileSetsProjectRoot(t *testing.T) {
	defer ResetConfig()
	project := t.TempDir()
	cfgPath := writeConfig(t, project, "language: cpp\n")

	elsewhere := t.TempDir()
	t.Chdir(elsewhere)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "cpp", cfg.Language)
	assert.Equal(t, filepath.Dir(cfgPath), cfg.ProjectRoot)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_ProjectDirFlagWins(t *testing.T) {
	defer ResetConfig()
	project := t.TempDir()
	writeConfig(t, project, "language: python\n")
	t.Chdir(t.TempDir())

	flags := newFlags()
	require.NoError(t, flags.Set("project-dir", project))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.Language)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	defer ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "language: [unclosed\n")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
