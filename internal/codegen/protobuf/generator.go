package protobuf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/okra-platform/elemgen/internal/codegen/typemap"
	"github.com/okra-platform/elemgen/internal/schema"
)

// DefaultTypes maps WebIDL primitives to protobuf scalar types
var DefaultTypes = typemap.TypeMap{
	"DOMString":           "string",
	"USVString":           "string",
	"ByteString":          "bytes",
	"boolean":             "bool",
	"byte":                "int32",
	"octet":               "uint32",
	"short":               "int32",
	"unsigned short":      "uint32",
	"long":                "int32",
	"unsigned long":       "uint32",
	"long long":           "int64",
	"unsigned long long":  "uint64",
	"float":               "float",
	"unrestricted float":  "float",
	"double":              "double",
	"unrestricted double": "double",
}

const header = "syntax = \"proto3\";\n\n"

// Generator generates protobuf message definitions
type Generator struct {
	types typemap.TypeMap
}

// NewGenerator creates a new protobuf generator
func NewGenerator(types typemap.TypeMap) *Generator {
	return &Generator{
		types: types,
	}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "protobuf"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".proto"
}

// ManifestFile returns the name of the file importing every entity
func (g *Generator) ManifestFile() string {
	return "mod.proto"
}

// Types returns the type table used for field types
func (g *Generator) Types() typemap.TypeMap {
	return g.types
}

// Generate creates a proto3 message from the attribute members.
// Field numbers follow declaration order starting at 1.
func (g *Generator) Generate(iface *schema.Interface) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(header)
	buf.WriteString(fmt.Sprintf("message %s {\n", iface.Name))

	for i, attr := range iface.Attributes() {
		fieldNum := i + 1

		// Sequences become repeated fields; proto3 has no optional repeated
		if elem, ok := sequenceElem(attr.Type); ok {
			protoType := g.types.Map(strings.TrimSuffix(elem, "?"))
			buf.WriteString(fmt.Sprintf("  repeated %s %s = %d;\n", protoType, attr.Name, fieldNum))
		} else if attr.Nullable {
			buf.WriteString(fmt.Sprintf("  optional %s %s = %d;\n", g.types.Map(attr.Type), attr.Name, fieldNum))
		} else {
			buf.WriteString(fmt.Sprintf("  %s %s = %d;\n", g.types.Map(attr.Type), attr.Name, fieldNum))
		}
	}
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// Manifest imports every entity file
func (g *Generator) Manifest(ids []string) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	for _, id := range ids {
		buf.WriteString(fmt.Sprintf("import \"%s%s\";\n", id, g.FileExtension()))
	}
	return buf.Bytes()
}

func sequenceElem(typ string) (string, bool) {
	for _, prefix := range []string{"sequence<", "FrozenArray<"} {
		if strings.HasPrefix(typ, prefix) && strings.HasSuffix(typ, ">") {
			return typ[len(prefix) : len(typ)-1], true
		}
	}
	return "", false
}
