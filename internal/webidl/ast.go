// Package webidl parses the WebIDL definitions used by the HTML standard into a small AST.
//
// The parser accepts the definition forms that appear in element IDL files: interfaces
// (including partial, mixin and callback interfaces), dictionaries, enums, typedefs,
// callbacks, namespaces and includes statements. Extended attributes are kept as raw
// text; they never change how a definition is read.
package webidl

import "strings"

// DefinitionKind identifies a top-level definition
type DefinitionKind string

const (
	DefInterface         DefinitionKind = "interface"
	DefMixin             DefinitionKind = "interface mixin"
	DefCallbackInterface DefinitionKind = "callback interface"
	DefCallback          DefinitionKind = "callback"
	DefDictionary        DefinitionKind = "dictionary"
	DefEnum              DefinitionKind = "enum"
	DefTypedef           DefinitionKind = "typedef"
	DefNamespace         DefinitionKind = "namespace"
	DefIncludes          DefinitionKind = "includes"
)

// MemberKind identifies a member of an interface, namespace or dictionary
type MemberKind string

const (
	MemberAttribute   MemberKind = "attribute"
	MemberOperation   MemberKind = "operation"
	MemberConst       MemberKind = "const"
	MemberConstructor MemberKind = "constructor"
	MemberIterable    MemberKind = "iterable"
	MemberMaplike     MemberKind = "maplike"
	MemberSetlike     MemberKind = "setlike"
	MemberStringifier MemberKind = "stringifier"
	MemberField       MemberKind = "field"
)

// Definition is one top-level construct of a document
type Definition struct {
	Kind     DefinitionKind
	Name     string
	Partial  bool
	Inherits string
	ExtAttrs []string
	Members  []Member

	// Values holds enum values
	Values []string
	// Type is the aliased type of a typedef or the return type of a callback
	Type *Type
	// Args holds callback arguments
	Args []Argument
	// Includes names the mixin of an includes statement; Name is the target
	Includes string
}

// Member is one member of a definition body
type Member struct {
	Kind     MemberKind
	Name     string
	Type     *Type
	ExtAttrs []string

	Readonly bool
	Static   bool
	Inherit  bool
	Async    bool
	Required bool
	// Special is getter, setter, deleter or stringifier when present
	Special string

	Args []Argument
	// Value is the raw text of a const value or dictionary default
	Value string
	// Params holds iterable/maplike/setlike type parameters
	Params []*Type
}

// Argument is one operation, constructor or callback argument
type Argument struct {
	Name     string
	Type     *Type
	Optional bool
	Variadic bool
	Default  string
}

// Type is a WebIDL type reference
type Type struct {
	// Name is the type name; multi-word primitives keep their spacing ("unsigned long")
	Name string
	// Params holds generic parameters (sequence<T>, record<K, V>, Promise<T>)
	Params []*Type
	// Union holds the member types of a union type; Name is empty for unions
	Union    []*Type
	Nullable bool
}

// String renders the type in WebIDL syntax including the nullable marker
func (t *Type) String() string {
	if t == nil {
		return ""
	}
	s := t.Base()
	if t.Nullable {
		s += "?"
	}
	return s
}

// Base renders the type in WebIDL syntax without the outer nullable marker
func (t *Type) Base() string {
	if t == nil {
		return ""
	}
	if len(t.Union) > 0 {
		parts := make([]string, len(t.Union))
		for i, u := range t.Union {
			parts[i] = u.String()
		}
		return "(" + strings.Join(parts, " or ") + ")"
	}
	if len(t.Params) > 0 {
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	}
	return t.Name
}

// First returns the first definition of one of the given kinds, or nil
func First(defs []Definition, kinds ...DefinitionKind) *Definition {
	for i := range defs {
		for _, k := range kinds {
			if defs[i].Kind == k {
				return &defs[i]
			}
		}
	}
	return nil
}
