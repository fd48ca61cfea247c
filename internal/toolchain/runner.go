// Package toolchain invokes native build toolchains as external processes.
// It treats every toolchain as an opaque capability: given a working
// directory, arguments, and environment overrides, produce output and an
// exit status.
package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// Command is one native toolchain invocation.
type Command struct {
	// Argv is the program and its arguments
	Argv []string

	// Dir is the working directory for the invocation
	Dir string

	// Env holds environment overrides appended to the ambient environment
	Env map[string]string
}

// Result captures the outcome of a toolchain invocation.
type Result struct {
	// Output is the combined stdout and stderr of the process
	Output string

	// Duration is the wall-clock time of the invocation
	Duration time.Duration
}

// Runner executes toolchain commands. The exec-backed implementation is the
// production path; tests substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands via os/exec with combined output capture.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner creates a runner. A nil logger discards log output.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecRunner{logger: logger}
}

// Run executes the command synchronously and returns its combined output.
// A nonzero exit propagates as an error alongside the captured output.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if len(cmd.Argv) == 0 {
		return Result{}, fmt.Errorf("empty command")
	}

	r.logger.Debug("invoking toolchain", "argv", strings.Join(cmd.Argv, " "), "dir", cmd.Dir)

	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	c.Env = mergeEnv(os.Environ(), cmd.Env)

	start := time.Now()
	out, err := c.CombinedOutput()
	res := Result{Output: string(out), Duration: time.Since(start)}

	if err != nil {
		r.logger.Debug("toolchain invocation failed", "argv", cmd.Argv[0], "error", err)
		return res, fmt.Errorf("%s: %w", cmd.Argv[0], err)
	}
	return res, nil
}

// Probe runs `command --version` and returns the first output line.
// Used for environment reporting; a missing tool is not fatal.
func Probe(ctx context.Context, command string) (string, error) {
	out, err := exec.CommandContext(ctx, command, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", command, err)
	}
	line := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
	return line, nil
}

// mergeEnv appends overrides to the base environment in sorted key order so
// repeated invocations see an identical environment.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := append([]string(nil), base...)
	for _, k := range keys {
		merged = append(merged, k+"="+overrides[k])
	}
	return merged
}
