package rust

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/okra-platform/elemgen/internal/codegen/typemap"
	"github.com/okra-platform/elemgen/internal/codegen/writer"
	"github.com/okra-platform/elemgen/internal/schema"
)

// DefaultTypes maps WebIDL primitives to owned Rust types
var DefaultTypes = typemap.TypeMap{
	"DOMString":           "String",
	"USVString":           "String",
	"ByteString":          "String",
	"boolean":             "bool",
	"byte":                "i8",
	"octet":               "u8",
	"short":               "i16",
	"unsigned short":      "u16",
	"long":                "i32",
	"unsigned long":       "u32",
	"long long":           "i64",
	"unsigned long long":  "u64",
	"float":               "f32",
	"unrestricted float":  "f32",
	"double":              "f64",
	"unrestricted double": "f64",
}

// Generator generates Rust struct declarations
type Generator struct {
	types typemap.TypeMap
}

// NewGenerator creates a new Rust code generator using the given type table
func NewGenerator(types typemap.TypeMap) *Generator {
	return &Generator{types: types}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "rust"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".rs"
}

// ManifestFile returns the name of the module aggregator file
func (g *Generator) ManifestFile() string {
	return "mod.rs"
}

// Types returns the type table used for field types
func (g *Generator) Types() typemap.TypeMap {
	return g.types
}

// ErrReservedName is returned for entities whose struct or module name would be a Rust path keyword
var ErrReservedName = errors.New("entity name is a reserved Rust path keyword")

// Generate emits one pub struct with a field per attribute member, in declaration order.
// The declaration ends at the closing brace.
func (g *Generator) Generate(iface *schema.Interface) ([]byte, error) {
	// The module name is the lower-cased entity name, so Self and CRATE are just as unusable
	if rustPathKeywords[iface.Name] || rustPathKeywords[strings.ToLower(iface.Name)] {
		return nil, errors.Wrapf(ErrReservedName, "%q", iface.Name)
	}

	w := writer.NewWriter("  ")

	w.WriteBlock("pub struct "+toRustIdent(iface.Name)+" {", "}", func() {
		for _, attr := range iface.Attributes() {
			w.WriteLinef("%s: %s,", toRustIdent(attr.Name), g.types.Map(attr.Type))
		}
	})

	return bytes.TrimSuffix(w.Bytes(), []byte("\n")), nil
}

// Manifest emits one mod declaration per entity identifier, in the order given
func (g *Generator) Manifest(ids []string) []byte {
	w := writer.NewWriter("")
	for _, id := range ids {
		w.WriteLinef("mod %s;", toRustIdent(id))
	}
	return w.Bytes()
}

var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "static": true, "struct": true,
	"trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "yield": true,
}

// Path keywords cannot be raw identifiers
var rustPathKeywords = map[string]bool{
	"crate": true, "self": true, "Self": true, "super": true,
}

// toRustIdent converts an identifier to a valid Rust identifier.
// Keywords get the r# prefix; path keywords get a trailing underscore.
func toRustIdent(s string) string {
	if rustPathKeywords[s] {
		return s + "_"
	}
	if rustKeywords[s] {
		return "r#" + s
	}
	return s
}
