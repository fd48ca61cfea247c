// Package engine orchestrates build-configuration synthesis: it resolves
// project identity, composes the tool environment, runs the dev and release
// build variants, and assembles the uniform output set.
package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/glotlabs/glot/internal/builder"
	"github.com/glotlabs/glot/internal/state"
	"github.com/glotlabs/glot/internal/tool"
	"github.com/glotlabs/glot/internal/toolchain"
)

// Engine coordinates one project build from descriptor to output set.
type Engine struct {
	tools      *tool.Registry
	adapters   *builder.Registry
	core       *builder.Builder
	runner     toolchain.Runner
	store      state.Store
	logger     *slog.Logger
	workRoot   string
	categories []tool.Category
}

// Config holds engine configuration.
type Config struct {
	// ToolRegistry is the shared tool catalog (defaults to tool.DefaultRegistry)
	ToolRegistry *tool.Registry

	// Adapters is the language adapter registry (defaults to builder.DefaultRegistry)
	Adapters *builder.Registry

	// Runner invokes native toolchains (defaults to an exec-backed runner)
	Runner toolchain.Runner

	// Store records build history (optional; nil disables recording)
	Store state.Store

	// ToolCategories restricts which standard categories are composed into
	// dev environments (optional; defaults to every registry category).
	// The security category is mandatory and always included.
	ToolCategories []tool.Category

	// WorkRoot is the root for per-variant build workspaces (optional;
	// defaults to <sourceRoot>/.glot/work per descriptor)
	WorkRoot string

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tools := cfg.ToolRegistry
	if tools == nil {
		tools = tool.DefaultRegistry()
	}
	adapters := cfg.Adapters
	if adapters == nil {
		adapters = builder.DefaultRegistry()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = toolchain.NewExecRunner(logger)
	}

	logger.Debug("initializing engine", "languages", adapters.Languages())

	return &Engine{
		tools:      tools,
		adapters:   adapters,
		core:       builder.New(runner, logger),
		runner:     runner,
		store:      cfg.Store,
		logger:     logger,
		workRoot:   cfg.WorkRoot,
		categories: cfg.ToolCategories,
	}, nil
}

// Close releases engine resources.
func (e *Engine) Close() error {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			return fmt.Errorf("error closing state store: %w", err)
		}
	}
	return nil
}

// Languages returns the supported language tags.
func (e *Engine) Languages() []string {
	return e.adapters.Languages()
}

// ComposeTools resolves the effective tool set for a descriptor: all
// standard registry categories, the language's own tools, and user extras.
func (e *Engine) ComposeTools(desc builder.Descriptor) (*tool.Set, error) {
	adapter, err := e.adapters.Get(desc.Language)
	if err != nil {
		return nil, err
	}

	categories := e.categories
	if len(categories) == 0 {
		categories = e.tools.Categories()
	} else {
		// Security tools are mandatory: a narrowed category list must
		// never silently drop them.
		hasSecurity := false
		for _, c := range categories {
			if c == tool.CategorySecurity {
				hasSecurity = true
				break
			}
		}
		if !hasSecurity {
			categories = append(append([]tool.Category(nil), categories...), tool.CategorySecurity)
		}
	}

	standard, err := e.tools.Resolve(categories...)
	if err != nil {
		return nil, err
	}
	return tool.Compose(standard, adapter.Tools(), desc.ExtraTools), nil
}

// workRootFor returns the workspace root for a descriptor.
func (e *Engine) workRootFor(desc builder.Descriptor) string {
	if e.workRoot != "" {
		return e.workRoot
	}
	return filepath.Join(desc.SourceRoot, ".glot", "work")
}
