// Package commands implements the glot subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glotlabs/glot/internal/builder"
	"github.com/glotlabs/glot/internal/cli/config"
	"github.com/glotlabs/glot/internal/cli/output"
	"github.com/glotlabs/glot/internal/engine"
	"github.com/glotlabs/glot/internal/state"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/spf13/cobra"
)

// Helper functions shared across commands

// getConfig returns the current configuration.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback when no config was loaded (direct command construction in tests)
	cwd, _ := os.Getwd()
	return &config.Config{
		ProjectRoot:  cwd,
		StatePath:    filepath.Join(cwd, config.DefaultStateFile),
		WorkDir:      filepath.Join(cwd, config.DefaultWorkDir),
		OutputFormat: config.DefaultOutput,
	}
}

// newRenderer builds the renderer for a command from the loaded config.
func newRenderer(cmd *cobra.Command, cfg *config.Config) *output.Renderer {
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}

// newLogger builds the structured logger. Verbose enables debug level on
// stderr; otherwise only warnings and errors surface.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// createEngine creates an engine from the current configuration. The caller
// owns the engine and must Close it.
func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	// Ensure state directory exists
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}

	categories := make([]tool.Category, 0, len(cfg.ToolCategories))
	for _, c := range cfg.ToolCategories {
		categories = append(categories, tool.Category(c))
	}

	return engine.New(engine.Config{
		Store:          store,
		WorkRoot:       cfg.WorkDir,
		ToolCategories: categories,
		Logger:         logger,
	})
}

// descriptorFor builds the project descriptor from the configuration,
// detecting the language from manifest files when none is configured.
func descriptorFor(cfg *config.Config) (builder.Descriptor, error) {
	language := cfg.Language
	if language == "" {
		detected, err := detectLanguage(cfg.ProjectRoot)
		if err != nil {
			return builder.Descriptor{}, err
		}
		language = detected
	}

	return builder.Descriptor{
		SourceRoot:         cfg.ProjectRoot,
		Language:           language,
		BuildTargetPath:    cfg.BuildTargetPath,
		BinaryNameOverride: cfg.BinaryName,
		ExtraTools:         cfg.ExtraTools,
		Tests:              builder.TestConfig{Args: cfg.TestArgs},
	}, nil
}

// languageMarkers maps a manifest presence probe to a language tag, checked
// in order. Globs are matched in the project root only.
var languageMarkers = []struct {
	glob     string
	language string
}{
	{"Cargo.toml", "rust"},
	{"go.mod", "go"},
	{"pyproject.toml", "python"},
	{"*.csproj", "csharp"},
	{"*.nimble", "nim"},
	{"build.zig.zon", "zig"},
	{"CMakeLists.txt", "cpp"},
}

// detectLanguage infers the project language from manifest files in root.
func detectLanguage(root string) (string, error) {
	var found []string
	for _, marker := range languageMarkers {
		matches, err := filepath.Glob(filepath.Join(root, marker.glob))
		if err != nil {
			continue
		}
		if len(matches) > 0 {
			found = append(found, marker.language)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("no project manifest found in %s; set language in glot.yaml or pass --language", root)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("multiple project manifests found in %s (%v); pass --language to disambiguate", root, found)
	}
}
