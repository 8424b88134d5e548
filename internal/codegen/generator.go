package codegen

import (
	"github.com/okra-platform/elemgen/internal/codegen/typemap"
	"github.com/okra-platform/elemgen/internal/schema"
)

// Generator is the interface that all language-specific code generators must implement
type Generator interface {
	// Generate renders one struct declaration for the interface's attribute members
	Generate(iface *schema.Interface) ([]byte, error)

	// Manifest renders the aggregator file referencing every entity identifier
	Manifest(ids []string) []byte

	// Language returns the name of the target language (e.g., "rust", "typescript")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".rs", ".ts")
	FileExtension() string

	// ManifestFile returns the aggregator file name (e.g., "mod.rs")
	ManifestFile() string

	// Types returns the type table the generator maps field types with
	Types() typemap.TypeMap
}
