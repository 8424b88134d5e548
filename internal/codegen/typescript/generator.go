package typescript

import (
	"strings"

	"github.com/okra-platform/elemgen/internal/codegen/typemap"
	"github.com/okra-platform/elemgen/internal/codegen/writer"
	"github.com/okra-platform/elemgen/internal/schema"
)

// DefaultTypes maps WebIDL primitives to TypeScript types
var DefaultTypes = typemap.TypeMap{
	"DOMString":           "string",
	"USVString":           "string",
	"ByteString":          "string",
	"boolean":             "boolean",
	"byte":                "number",
	"octet":               "number",
	"short":               "number",
	"unsigned short":      "number",
	"long":                "number",
	"unsigned long":       "number",
	"long long":           "bigint",
	"unsigned long long":  "bigint",
	"float":               "number",
	"unrestricted float":  "number",
	"double":              "number",
	"unrestricted double": "number",
	"any":                 "any",
	"object":              "object",
	"undefined":           "undefined",
}

// Generator generates TypeScript interfaces
type Generator struct {
	types typemap.TypeMap
}

// NewGenerator creates a new TypeScript code generator
func NewGenerator(types typemap.TypeMap) *Generator {
	return &Generator{types: types}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".ts"
}

// ManifestFile returns the name of the barrel file re-exporting every entity
func (g *Generator) ManifestFile() string {
	return "index.ts"
}

// Types returns the type table used for field types
func (g *Generator) Types() typemap.TypeMap {
	return g.types
}

// Generate generates a TypeScript interface for the attribute members
func (g *Generator) Generate(iface *schema.Interface) ([]byte, error) {
	w := writer.NewWriter("  ")

	w.WriteBlock("export interface "+iface.Name+" {", "}", func() {
		for _, attr := range iface.Attributes() {
			optional := ""
			if attr.Nullable {
				optional = "?"
			}
			readonly := ""
			if attr.Readonly {
				readonly = "readonly "
			}
			w.WriteLinef("%s%s%s: %s;", readonly, attr.Name, optional, g.mapToTSType(attr.Type))
		}
	})

	return w.Bytes(), nil
}

// Manifest re-exports each entity module
func (g *Generator) Manifest(ids []string) []byte {
	w := writer.NewWriter("")
	for _, id := range ids {
		w.WriteLinef("export * from \"./%s\";", id)
	}
	return w.Bytes()
}

// mapToTSType maps a declared type, turning sequences into arrays
func (g *Generator) mapToTSType(typ string) string {
	if inner, ok := sequenceElem(typ); ok {
		elem := g.mapToTSType(strings.TrimSuffix(inner, "?"))
		if strings.HasSuffix(inner, "?") {
			return "(" + elem + " | null)[]"
		}
		return elem + "[]"
	}
	return g.types.Map(typ)
}

// sequenceElem returns T for sequence<T> and FrozenArray<T>
func sequenceElem(typ string) (string, bool) {
	for _, prefix := range []string{"sequence<", "FrozenArray<", "ObservableArray<"} {
		if strings.HasPrefix(typ, prefix) && strings.HasSuffix(typ, ">") {
			return typ[len(prefix) : len(typ)-1], true
		}
	}
	return "", false
}
