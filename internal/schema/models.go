// Package schema defines the interface model shared by the schema dialect parsers and the code generators.
package schema

import "errors"

// ErrNoInterface is returned when a document parses but declares no interface
var ErrNoInterface = errors.New("document declares no interface")

// MemberKind tags a member of an interface
type MemberKind string

const (
	KindAttribute   MemberKind = "attribute"
	KindOperation   MemberKind = "operation"
	KindConst       MemberKind = "const"
	KindConstructor MemberKind = "constructor"
	KindIterable    MemberKind = "iterable"
	KindMaplike     MemberKind = "maplike"
	KindSetlike     MemberKind = "setlike"
	KindStringifier MemberKind = "stringifier"
)

// Interface is the parsed form of one schema document
type Interface struct {
	Name     string   `json:"name"`
	Inherits string   `json:"inherits,omitempty"`
	Members  []Member `json:"members"`
}

// Member is one declared member of an interface
type Member struct {
	Kind     MemberKind `json:"kind"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Nullable bool       `json:"nullable,omitempty"`
	Readonly bool       `json:"readonly,omitempty"`
}

// Attributes returns the attribute members in declaration order
func (i *Interface) Attributes() []Member {
	attrs := make([]Member, 0, len(i.Members))
	for _, m := range i.Members {
		if m.Kind == KindAttribute {
			attrs = append(attrs, m)
		}
	}
	return attrs
}

// Parser turns the raw text of one schema document into an Interface
type Parser interface {
	Parse(input string) (*Interface, error)
}

// ParserFunc adapts a plain function to the Parser interface
type ParserFunc func(input string) (*Interface, error)

// Parse calls f(input)
func (f ParserFunc) Parse(input string) (*Interface, error) {
	return f(input)
}
