package schema

import (
	"fmt"

	"github.com/okra-platform/elemgen/internal/webidl"
)

// WebIDLParser reads the first interface of a WebIDL document
type WebIDLParser struct{}

// Parse implements Parser
func (WebIDLParser) Parse(input string) (*Interface, error) {
	return ParseWebIDL(input)
}

// ParseWebIDL parses a WebIDL document and returns its first interface definition
func ParseWebIDL(input string) (*Interface, error) {
	defs, err := webidl.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse WebIDL: %w", err)
	}

	def := webidl.First(defs, webidl.DefInterface, webidl.DefMixin, webidl.DefCallbackInterface)
	if def == nil {
		return nil, ErrNoInterface
	}

	iface := &Interface{
		Name:     def.Name,
		Inherits: def.Inherits,
		Members:  make([]Member, 0, len(def.Members)),
	}
	for _, m := range def.Members {
		iface.Members = append(iface.Members, convertMember(m))
	}
	return iface, nil
}

func convertMember(m webidl.Member) Member {
	member := Member{
		Kind:     memberKinds[m.Kind],
		Name:     m.Name,
		Readonly: m.Readonly,
	}
	if m.Type != nil {
		member.Type = m.Type.Base()
		member.Nullable = m.Type.Nullable
	}
	if member.Kind == "" {
		member.Kind = MemberKind(m.Kind)
	}
	return member
}

var memberKinds = map[webidl.MemberKind]MemberKind{
	webidl.MemberAttribute:   KindAttribute,
	webidl.MemberOperation:   KindOperation,
	webidl.MemberConst:       KindConst,
	webidl.MemberConstructor: KindConstructor,
	webidl.MemberIterable:    KindIterable,
	webidl.MemberMaplike:     KindMaplike,
	webidl.MemberSetlike:     KindSetlike,
	webidl.MemberStringifier: KindStringifier,
}
