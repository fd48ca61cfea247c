// Package tool provides the tool category registry and tool set composition
// for development environments. It maps tool categories to their member tools,
// enabling every language builder to compose its environment from one shared,
// immutable catalog.
package tool

import (
	"fmt"
	"sort"
)

// Category classifies a tool within the registry.
type Category string

// Known tool categories, in resolution order.
const (
	CategoryGeneral  Category = "general"
	CategoryBuild    Category = "build"
	CategoryDev      Category = "dev"
	CategorySecurity Category = "security"
	CategoryShell    Category = "shell"
	CategoryDoc      Category = "doc"
)

// categoryOrder fixes the deterministic resolution order across categories.
var categoryOrder = []Category{
	CategoryGeneral,
	CategoryBuild,
	CategoryDev,
	CategorySecurity,
	CategoryShell,
	CategoryDoc,
}

// Origin records where a tool in a composed set came from.
type Origin string

const (
	// OriginStandard marks tools from the shared registry catalog.
	OriginStandard Origin = "standard"

	// OriginLanguage marks tools contributed by a language adapter.
	OriginLanguage Origin = "language"

	// OriginExtra marks user-supplied extra tools.
	OriginExtra Origin = "extra"
)

// Tool is a single command-line tool available in a dev environment.
type Tool struct {
	// Name is the tool's command name (e.g., "git", "ripgrep")
	Name string

	// Category is the registry category the tool belongs to
	Category Category

	// Origin records how the tool entered the composed set
	Origin Origin
}

// Registry is an immutable catalog mapping categories to tools.
// It is an explicit value passed into builders, never package-level state.
type Registry struct {
	catalog map[Category][]Tool
}

// DefaultRegistry returns the standard catalog shared by all languages.
// Security-category tools are mandatory for every composed environment and
// are never silently dropped.
func DefaultRegistry() *Registry {
	return &Registry{catalog: map[Category][]Tool{
		CategoryGeneral: {
			{Name: "git", Category: CategoryGeneral, Origin: OriginStandard},
			{Name: "ripgrep", Category: CategoryGeneral, Origin: OriginStandard},
			{Name: "fd", Category: CategoryGeneral, Origin: OriginStandard},
			{Name: "jq", Category: CategoryGeneral, Origin: OriginStandard},
			{Name: "curl", Category: CategoryGeneral, Origin: OriginStandard},
		},
		CategoryBuild: {
			{Name: "gnumake", Category: CategoryBuild, Origin: OriginStandard},
			{Name: "just", Category: CategoryBuild, Origin: OriginStandard},
			{Name: "pkg-config", Category: CategoryBuild, Origin: OriginStandard},
		},
		CategoryDev: {
			{Name: "direnv", Category: CategoryDev, Origin: OriginStandard},
			{Name: "watchexec", Category: CategoryDev, Origin: OriginStandard},
		},
		CategorySecurity: {
			{Name: "sops", Category: CategorySecurity, Origin: OriginStandard},
			{Name: "age", Category: CategorySecurity, Origin: OriginStandard},
		},
		CategoryShell: {
			{Name: "bash", Category: CategoryShell, Origin: OriginStandard},
			{Name: "shellcheck", Category: CategoryShell, Origin: OriginStandard},
		},
		CategoryDoc: {
			{Name: "mdbook", Category: CategoryDoc, Origin: OriginStandard},
			{Name: "graphviz", Category: CategoryDoc, Origin: OriginStandard},
		},
	}}
}

// NewRegistry builds a registry from an explicit catalog. Intended for tests
// and embedders that need a reduced or extended catalog.
func NewRegistry(catalog map[Category][]Tool) *Registry {
	copied := make(map[Category][]Tool, len(catalog))
	for cat, tools := range catalog {
		copied[cat] = append([]Tool(nil), tools...)
	}
	return &Registry{catalog: copied}
}

// Categories returns the categories present in the registry, in resolution order.
func (r *Registry) Categories() []Category {
	var cats []Category
	for _, cat := range categoryOrder {
		if _, ok := r.catalog[cat]; ok {
			cats = append(cats, cat)
		}
	}
	return cats
}

// Resolve returns the tools for the requested categories in deterministic
// order: categories in registry order, tools in declaration order within each
// category. Referencing an unknown category is a configuration error.
func (r *Registry) Resolve(categories ...Category) ([]Tool, error) {
	requested := make(map[Category]bool, len(categories))
	for _, cat := range categories {
		if _, ok := r.catalog[cat]; !ok {
			return nil, &UnknownCategoryError{
				Category:  string(cat),
				Available: r.availableNames(),
			}
		}
		requested[cat] = true
	}

	var tools []Tool
	for _, cat := range categoryOrder {
		if !requested[cat] {
			continue
		}
		tools = append(tools, r.catalog[cat]...)
	}
	return tools, nil
}

// availableNames returns the sorted category names in the catalog.
func (r *Registry) availableNames() []string {
	names := make([]string, 0, len(r.catalog))
	for cat := range r.catalog {
		names = append(names, string(cat))
	}
	sort.Strings(names)
	return names
}

// UnknownCategoryError is returned when an unknown tool category is requested.
type UnknownCategoryError struct {
	Category  string
	Available []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown tool category %q\nAvailable categories: %v\nHint: check the extra_tools section in glot.yaml", e.Category, e.Available)
}
