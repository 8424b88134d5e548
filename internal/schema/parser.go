package schema

import (
	"fmt"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// GraphQLParser reads the first object or interface type of a GraphQL SDL document
type GraphQLParser struct{}

// Parse implements Parser
func (GraphQLParser) Parse(input string) (*Interface, error) {
	return ParseGraphQL(input)
}

// ParseGraphQL parses a GraphQL SDL document into an Interface.
// Fields without arguments become attributes; fields with arguments become operations.
func ParseGraphQL(input string) (*Interface, error) {
	doc, report := astparser.ParseGraphqlDocumentString(input)
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse GraphQL: %v", report)
	}

	// Walk definitions in document order and stop at the first type
	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		switch node.Kind {
		case ast.NodeKindObjectTypeDefinition:
			typeDef := doc.ObjectTypeDefinitions[node.Ref]
			iface := &Interface{
				Name:    doc.Input.ByteSliceString(typeDef.Name),
				Members: parseFields(&doc, typeDef.FieldsDefinition.Refs),
			}
			if refs := typeDef.ImplementsInterfaces.Refs; len(refs) > 0 {
				iface.Inherits, _ = parseType(&doc, refs[0])
			}
			return iface, nil

		case ast.NodeKindInterfaceTypeDefinition:
			typeDef := doc.InterfaceTypeDefinitions[node.Ref]
			return &Interface{
				Name:    doc.Input.ByteSliceString(typeDef.Name),
				Members: parseFields(&doc, typeDef.FieldsDefinition.Refs),
			}, nil
		}
	}

	return nil, ErrNoInterface
}

func parseFields(doc *ast.Document, refs []int) []Member {
	members := make([]Member, 0, len(refs))
	for _, fieldRef := range refs {
		members = append(members, parseField(doc, fieldRef))
	}
	return members
}

func parseField(doc *ast.Document, fieldRef int) Member {
	fieldDef := doc.FieldDefinitions[fieldRef]

	kind := KindAttribute
	if len(fieldDef.ArgumentsDefinition.Refs) > 0 {
		kind = KindOperation
	}

	typeStr, required := parseType(doc, fieldDef.Type)
	return Member{
		Kind:     kind,
		Name:     doc.Input.ByteSliceString(fieldDef.Name),
		Type:     typeStr,
		Nullable: !required,
	}
}

// parseType renders a GraphQL type reference in WebIDL terms so both dialects
// share one type vocabulary; lists become sequence<T>
func parseType(doc *ast.Document, typeRef int) (string, bool) {
	required := false
	currentRef := typeRef

	// Handle NonNull wrapper
	if doc.Types[currentRef].TypeKind == ast.TypeKindNonNull {
		required = true
		currentRef = doc.Types[currentRef].OfType
	}

	// Handle List wrapper
	if doc.Types[currentRef].TypeKind == ast.TypeKindList {
		innerType, innerRequired := parseType(doc, doc.Types[currentRef].OfType)
		if !innerRequired {
			innerType += "?"
		}
		return "sequence<" + innerType + ">", required
	}

	// Named type
	if doc.Types[currentRef].TypeKind == ast.TypeKindNamed {
		return doc.Input.ByteSliceString(doc.Types[currentRef].Name), required
	}

	return "any", required
}

// NewParser returns the parser for a schema dialect ("webidl" or "graphql")
func NewParser(dialect string) (Parser, error) {
	switch dialect {
	case "", DialectWebIDL:
		return WebIDLParser{}, nil
	case DialectGraphQL:
		return GraphQLParser{}, nil
	}
	return nil, fmt.Errorf("unsupported schema dialect: %s (supported: %s, %s)", dialect, DialectWebIDL, DialectGraphQL)
}

// Schema dialects understood by NewParser
const (
	DialectWebIDL  = "webidl"
	DialectGraphQL = "graphql"
)
