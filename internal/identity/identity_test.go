package identity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with parent directories under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_RustPackageName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", `[package]
name = "demo"
version = "0.1.0"
`)

	id, err := Resolve(root, "rust", "", "")
	require.NoError(t, err)
	assert.Equal(t, "demo", id.Name)
	assert.Equal(t, "demo", id.BinaryName)
	assert.False(t, id.HasTests, "no test dir, file, or dev-dependency group")
}

func TestResolve_RustFirstBinTargetWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", `[package]
name = "demo"

[[bin]]
name = "demo-cli"

[[bin]]
name = "demo-daemon"
`)

	id, err := Resolve(root, "rust", "", "")
	require.NoError(t, err)
	assert.Equal(t, "demo", id.Name)
	assert.Equal(t, "demo-cli", id.BinaryName, "first declared binary target, never an arbitrary pick")
}

func TestResolve_RustDevDependenciesImplyTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", `[package]
name = "demo"

[dev-dependencies]
proptest = "1"
`)

	id, err := Resolve(root, "rust", "", "")
	require.NoError(t, err)
	assert.True(t, id.HasTests)
}

func TestResolve_TestDirectoryImpliesTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[package]\nname = \"demo\"\n")
	writeFile(t, root, "tests/smoke.rs", "")

	id, err := Resolve(root, "rust", "", "")
	require.NoError(t, err)
	assert.True(t, id.HasTests)
}

func TestResolve_GoModuleLastSegment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module github.com/acme/widget\n\ngo 1.24.0\n")

	id, err := Resolve(root, "go", "", "")
	require.NoError(t, err)
	assert.Equal(t, "widget", id.Name)
	assert.False(t, id.HasTests)
}

func TestResolve_GoTestFileImpliesTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/widget\n")
	writeFile(t, root, "internal/widget/widget_test.go", "package widget\n")

	id, err := Resolve(root, "go", "", "")
	require.NoError(t, err)
	assert.True(t, id.HasTests)
}

func TestResolve_CsprojFilenameSansExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Frobnicator.csproj", `<Project Sdk="Microsoft.NET.Sdk"></Project>`)

	id, err := Resolve(root, "csharp", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Frobnicator", id.Name)
	assert.Equal(t, "Frobnicator", id.BinaryName)
}

func TestResolve_AmbiguousCsproj(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "One.csproj", `<Project></Project>`)
	writeFile(t, root, "Two.csproj", `<Project></Project>`)

	_, err := Resolve(root, "csharp", "", "")
	require.Error(t, err)

	var merr *ManifestError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, KindAmbiguous, merr.Kind)
	assert.Contains(t, merr.Detail, "One.csproj")
	assert.Contains(t, merr.Detail, "Two.csproj")
}

func TestResolve_MissingManifest(t *testing.T) {
	tests := []struct {
		language string
	}{
		{"rust"},
		{"go"},
		{"python"},
		{"csharp"},
		{"nim"},
		{"zig"},
		{"cpp"},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			_, err := Resolve(t.TempDir(), tt.language, "", "")
			require.Error(t, err)

			var merr *ManifestError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, KindMissing, merr.Kind)
		})
	}
}

func TestResolve_InvalidManifestDoesNotFallBack(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "this is not toml = = =\n")

	_, err := Resolve(root, "rust", "", "")
	require.Error(t, err)

	var merr *ManifestError
	require.True(t, errors.As(err, &merr), "parse failure must be an explicit error, not a directory-name fallback")
	assert.Equal(t, KindInvalid, merr.Kind)
}

func TestResolve_OverrideUsedVerbatim(t *testing.T) {
	root := t.TempDir()
	// No manifest at all: the override short-circuits name derivation.
	id, err := Resolve(root, "rust", "", "custom-name")
	require.NoError(t, err)
	assert.Equal(t, "custom-name", id.Name)
	assert.Equal(t, "custom-name", id.BinaryName)
}

func TestResolve_BuildTargetPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "services/api/go.mod", "module example.com/api\n")

	id, err := Resolve(root, "go", "services/api", "")
	require.NoError(t, err)
	assert.Equal(t, "api", id.Name)
}

func TestResolve_PythonProjectName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", `[project]
name = "demo"
version = "0.1.0"
`)

	id, err := Resolve(root, "python", "", "")
	require.NoError(t, err)
	assert.Equal(t, "demo", id.Name)
	assert.False(t, id.HasTests)
}

func TestResolve_PythonPoetryNameAndDevGroup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", `[tool.poetry]
name = "legacy-app"

[tool.poetry.group.dev.dependencies]
pytest = "^8.0"
`)

	id, err := Resolve(root, "python", "", "")
	require.NoError(t, err)
	assert.Equal(t, "legacy-app", id.Name)
	assert.True(t, id.HasTests, "poetry dev group counts as a test dependency group")
}

func TestResolve_PythonTestFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project]\nname = \"demo\"\n")
	writeFile(t, root, "demo/test_main.py", "")

	id, err := Resolve(root, "python", "", "")
	require.NoError(t, err)
	assert.True(t, id.HasTests)
}

func TestResolve_NimbleFilename(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shiny.nimble", "version = \"0.1.0\"\n")

	id, err := Resolve(root, "nim", "", "")
	require.NoError(t, err)
	assert.Equal(t, "shiny", id.Name)
}

func TestResolve_ZigZonName(t *testing.T) {
	tests := []struct {
		name string
		zon  string
		want string
	}{
		{"enum literal form", ".{ .name = .demo, .version = \"0.1.0\" }", "demo"},
		{"string form", ".{ .name = \"demo\", .version = \"0.1.0\" }", "demo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, root, "build.zig.zon", tt.zon)
			writeFile(t, root, "build.zig", "")

			id, err := Resolve(root, "zig", "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.Name)
		})
	}
}

func TestResolve_CMakeProjectName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "CMakeLists.txt", `cmake_minimum_required(VERSION 3.20)
project(hello-cpp VERSION 1.0 LANGUAGES CXX)
`)

	id, err := Resolve(root, "cpp", "", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-cpp", id.Name)
}

func TestResolve_UnsupportedLanguage(t *testing.T) {
	_, err := Resolve(t.TempDir(), "fortran", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}
