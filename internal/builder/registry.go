package builder

import (
	"fmt"
	"sort"
)

// Registry maps language tags to their adapters. It is an explicit value
// constructed once and shared read-only, never mutated after construction.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a registry from the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	m := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Language()] = a
	}
	return &Registry{adapters: m}
}

// DefaultRegistry returns the registry with all supported languages.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&csharpAdapter{},
		&rustAdapter{},
		&pythonAdapter{},
		&goAdapter{},
		&nimAdapter{},
		&zigAdapter{},
		&cppAdapter{},
	)
}

// Get returns the adapter for a language tag.
func (r *Registry) Get(language string) (Adapter, error) {
	a, ok := r.adapters[language]
	if !ok {
		return nil, &UnknownLanguageError{Language: language, Available: r.Languages()}
	}
	return a, nil
}

// Languages returns the registered language tags, sorted.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.adapters))
	for l := range r.adapters {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// UnknownLanguageError is returned when no adapter handles a language tag.
type UnknownLanguageError struct {
	Language  string
	Available []string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language %q\nAvailable languages: %v\nHint: check the language field in glot.yaml", e.Language, e.Available)
}
