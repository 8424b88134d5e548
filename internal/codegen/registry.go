package codegen

import (
	"fmt"
	"sort"

	"github.com/okra-platform/elemgen/internal/codegen/typemap"
)

// Factory builds a generator around a complete type table
type Factory func(types typemap.TypeMap) Generator

type entry struct {
	defaults typemap.TypeMap
	factory  Factory
}

// Registry manages available code generators
type Registry struct {
	generators map[string]entry
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]entry),
	}
	return r
}

// Register adds a new generator factory to the registry along with its default type table
func (r *Registry) Register(language string, defaults typemap.TypeMap, factory Factory) {
	r.generators[language] = entry{defaults: defaults, factory: factory}
}

// Get returns a generator for the specified language, with overrides applied on top of its defaults
func (r *Registry) Get(language string, overrides map[string]string) (Generator, error) {
	e, exists := r.generators[language]
	if !exists {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	types := e.defaults.With(overrides)
	if err := types.Validate(); err != nil {
		return nil, fmt.Errorf("invalid type overrides for %s: %w", language, err)
	}

	return e.factory(types), nil
}

// Has reports whether a language is registered
func (r *Registry) Has(language string) bool {
	_, ok := r.generators[language]
	return ok
}

// Languages returns a sorted list of supported languages
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.generators))
	for lang := range r.generators {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
