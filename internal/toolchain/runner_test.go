package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX sh")
	}
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	skipOnWindows(t)
	r := NewExecRunner(nil)

	res, err := r.Run(context.Background(), Command{Argv: []string{"sh", "-c", "echo hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Output)
	assert.Greater(t, res.Duration.Nanoseconds(), int64(0))
}

func TestExecRunner_NonzeroExitIsError(t *testing.T) {
	skipOnWindows(t)
	r := NewExecRunner(nil)

	res, err := r.Run(context.Background(), Command{Argv: []string{"sh", "-c", "echo boom >&2; exit 3"}})
	require.Error(t, err)
	assert.Contains(t, res.Output, "boom", "output must be preserved on failure")
}

func TestExecRunner_EnvOverrides(t *testing.T) {
	skipOnWindows(t)
	r := NewExecRunner(nil)

	res, err := r.Run(context.Background(), Command{
		Argv: []string{"sh", "-c", "echo $SOURCE_DATE_EPOCH"},
		Env:  map[string]string{"SOURCE_DATE_EPOCH": "315532800"},
	})
	require.NoError(t, err)
	assert.Equal(t, "315532800\n", res.Output)
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)
	r := NewExecRunner(nil)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), nil, 0o644))

	res, err := r.Run(context.Background(), Command{Argv: []string{"ls"}, Dir: dir})
	require.NoError(t, err)
	assert.Contains(t, res.Output, "marker.txt")
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	r := NewExecRunner(nil)

	_, err := r.Run(context.Background(), Command{})
	require.Error(t, err)
}

func TestMergeEnv_Deterministic(t *testing.T) {
	base := []string{"PATH=/usr/bin"}
	overrides := map[string]string{"TZ": "UTC", "LC_ALL": "C"}

	first := mergeEnv(base, overrides)
	second := mergeEnv(base, overrides)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"PATH=/usr/bin", "LC_ALL=C", "TZ=UTC"}, first)
}
