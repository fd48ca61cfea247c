package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{
		"build", "run", "test", "check", "lint", "fmt", "tools", "info",
		"clean", "history", "watch", "version", "completion",
	}

	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}

	for _, name := range want {
		assert.True(t, have[name], "missing subcommand %q", name)
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	root := NewRootCmd()
	flags := root.PersistentFlags()

	for _, name := range []string{
		"config", "project-dir", "language", "build-target-path",
		"binary-name", "extra-tools", "state", "work-dir", "verbose", "output",
	} {
		require.NotNil(t, flags.Lookup(name), "missing persistent flag %q", name)
	}
}
