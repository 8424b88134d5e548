package webidl

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads every definition in src
func Parse(src string) ([]Definition, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	var defs []Definition
	for !p.at(tokEOF, "") {
		def, err := p.definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// at reports whether the current token has the given kind and, if text is set, that text
func (p *parser) at(kind tokenKind, text string) bool {
	t := p.peek()
	return t.kind == kind && (text == "" || t.text == text)
}

func (p *parser) atSymbol(s string) bool {
	return p.at(tokOther, s)
}

func (p *parser) atKeyword(s string) bool {
	return p.at(tokIdent, s)
}

// accept consumes the current token when it is the given symbol or keyword
func (p *parser) accept(s string) bool {
	t := p.peek()
	if (t.kind == tokOther || t.kind == tokIdent) && t.text == s {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if p.accept(s) {
		return nil
	}
	return p.errorf("expected %q, found %s", s, describe(p.peek()))
}

func (p *parser) ident() (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", p.errorf("expected identifier, found %s", describe(t))
	}
	p.pos++
	return t.text, nil
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.peek()
	return &SyntaxError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

func describe(t token) string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

func (p *parser) definition() (Definition, error) {
	extAttrs, err := p.extendedAttributes()
	if err != nil {
		return Definition{}, err
	}

	var def Definition
	switch {
	case p.accept("callback"):
		def, err = p.callback()
	case p.accept("interface"):
		def, err = p.interfaceLike(false)
	case p.accept("partial"):
		def, err = p.partial()
	case p.accept("dictionary"):
		def, err = p.dictionary(false)
	case p.accept("enum"):
		def, err = p.enum()
	case p.accept("typedef"):
		def, err = p.typedef()
	case p.accept("namespace"):
		def, err = p.namespace(false)
	case p.at(tokIdent, "") && p.peekAt(1).kind == tokIdent && p.peekAt(1).text == "includes":
		def, err = p.includes()
	default:
		return Definition{}, p.errorf("expected definition, found %s", describe(p.peek()))
	}
	if err != nil {
		return Definition{}, err
	}

	def.ExtAttrs = extAttrs
	return def, nil
}

func (p *parser) callback() (Definition, error) {
	if p.accept("interface") {
		def, err := p.interfaceLike(false)
		def.Kind = DefCallbackInterface
		return def, err
	}

	name, err := p.ident()
	if err != nil {
		return Definition{}, err
	}
	if err := p.expect("="); err != nil {
		return Definition{}, err
	}
	ret, err := p.typ()
	if err != nil {
		return Definition{}, err
	}
	args, err := p.argumentList()
	if err != nil {
		return Definition{}, err
	}
	if err := p.expect(";"); err != nil {
		return Definition{}, err
	}
	return Definition{Kind: DefCallback, Name: name, Type: ret, Args: args}, nil
}

func (p *parser) partial() (Definition, error) {
	switch {
	case p.accept("interface"):
		return p.interfaceLike(true)
	case p.accept("dictionary"):
		return p.dictionary(true)
	case p.accept("namespace"):
		return p.namespace(true)
	}
	return Definition{}, p.errorf("expected interface, dictionary or namespace after partial, found %s", describe(p.peek()))
}

func (p *parser) interfaceLike(partial bool) (Definition, error) {
	def := Definition{Kind: DefInterface, Partial: partial}
	if p.accept("mixin") {
		def.Kind = DefMixin
	}

	name, err := p.ident()
	if err != nil {
		return Definition{}, err
	}
	def.Name = name

	if p.accept(":") {
		if def.Inherits, err = p.ident(); err != nil {
			return Definition{}, err
		}
	}

	if def.Members, err = p.body(p.interfaceMember); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func (p *parser) namespace(partial bool) (Definition, error) {
	name, err := p.ident()
	if err != nil {
		return Definition{}, err
	}
	members, err := p.body(p.interfaceMember)
	if err != nil {
		return Definition{}, err
	}
	return Definition{Kind: DefNamespace, Name: name, Partial: partial, Members: members}, nil
}

func (p *parser) dictionary(partial bool) (Definition, error) {
	def := Definition{Kind: DefDictionary, Partial: partial}

	name, err := p.ident()
	if err != nil {
		return Definition{}, err
	}
	def.Name = name

	if p.accept(":") {
		if def.Inherits, err = p.ident(); err != nil {
			return Definition{}, err
		}
	}

	if def.Members, err = p.body(p.dictionaryMember); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// body parses "{" members "}" ";"
func (p *parser) body(member func() (Member, error)) ([]Member, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	members := []Member{}
	for !p.atSymbol("}") {
		if p.at(tokEOF, "") {
			return nil, p.errorf("unexpected end of input inside definition body")
		}
		m, err := member()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	p.next()
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *parser) enum() (Definition, error) {
	name, err := p.ident()
	if err != nil {
		return Definition{}, err
	}
	if err := p.expect("{"); err != nil {
		return Definition{}, err
	}

	def := Definition{Kind: DefEnum, Name: name, Values: []string{}}
	for !p.atSymbol("}") {
		t := p.peek()
		if t.kind != tokString {
			return Definition{}, p.errorf("expected enum value string, found %s", describe(t))
		}
		p.next()
		def.Values = append(def.Values, t.text)
		if !p.accept(",") {
			break
		}
	}
	if err := p.expect("}"); err != nil {
		return Definition{}, err
	}
	if err := p.expect(";"); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func (p *parser) typedef() (Definition, error) {
	t, err := p.typ()
	if err != nil {
		return Definition{}, err
	}
	name, err := p.ident()
	if err != nil {
		return Definition{}, err
	}
	if err := p.expect(";"); err != nil {
		return Definition{}, err
	}
	return Definition{Kind: DefTypedef, Name: name, Type: t}, nil
}

func (p *parser) includes() (Definition, error) {
	target, _ := p.ident()
	p.next() // includes
	mixin, err := p.ident()
	if err != nil {
		return Definition{}, err
	}
	if err := p.expect(";"); err != nil {
		return Definition{}, err
	}
	return Definition{Kind: DefIncludes, Name: target, Includes: mixin}, nil
}

func (p *parser) interfaceMember() (Member, error) {
	extAttrs, err := p.extendedAttributes()
	if err != nil {
		return Member{}, err
	}

	m, err := p.interfaceMemberBody()
	if err != nil {
		return Member{}, err
	}
	m.ExtAttrs = extAttrs
	return m, nil
}

func (p *parser) interfaceMemberBody() (Member, error) {
	switch {
	case p.accept("const"):
		return p.constMember()

	case p.atKeyword("constructor") && p.peekAt(1).text == "(":
		p.next()
		args, err := p.argumentList()
		if err != nil {
			return Member{}, err
		}
		return Member{Kind: MemberConstructor, Args: args}, p.expect(";")

	case p.accept("stringifier"):
		if p.accept(";") {
			return Member{Kind: MemberStringifier}, nil
		}
		m, err := p.attributeOrOperation()
		m.Special = "stringifier"
		return m, err

	case p.accept("static"):
		m, err := p.attributeOrOperation()
		m.Static = true
		return m, err

	case p.accept("inherit"):
		m, err := p.attributeOrOperation()
		m.Inherit = true
		return m, err

	case p.atKeyword("async") && p.peekAt(1).text == "iterable":
		p.next()
		m, err := p.declaration(MemberIterable)
		m.Async = true
		return m, err

	case p.atKeyword("iterable") && p.peekAt(1).text == "<":
		return p.declaration(MemberIterable)

	case p.atKeyword("readonly") && (p.peekAt(1).text == "maplike" || p.peekAt(1).text == "setlike"):
		p.next()
		kind := MemberSetlike
		if p.atKeyword("maplike") {
			kind = MemberMaplike
		}
		m, err := p.declaration(kind)
		m.Readonly = true
		return m, err

	case p.atKeyword("maplike") && p.peekAt(1).text == "<":
		return p.declaration(MemberMaplike)

	case p.atKeyword("setlike") && p.peekAt(1).text == "<":
		return p.declaration(MemberSetlike)

	case p.atKeyword("getter"), p.atKeyword("setter"), p.atKeyword("deleter"):
		special := p.next().text
		m, err := p.operation()
		m.Special = special
		return m, err
	}

	return p.attributeOrOperation()
}

func (p *parser) attributeOrOperation() (Member, error) {
	if p.atKeyword("readonly") && p.peekAt(1).text == "attribute" {
		p.next()
		m, err := p.attribute()
		m.Readonly = true
		return m, err
	}
	if p.atKeyword("attribute") {
		return p.attribute()
	}
	return p.operation()
}

func (p *parser) attribute() (Member, error) {
	if err := p.expect("attribute"); err != nil {
		return Member{}, err
	}
	t, err := p.typ()
	if err != nil {
		return Member{}, err
	}
	// attribute names may be keywords such as "required" or "async"
	name, err := p.ident()
	if err != nil {
		return Member{}, err
	}
	if err := p.expect(";"); err != nil {
		return Member{}, err
	}
	return Member{Kind: MemberAttribute, Name: name, Type: t}, nil
}

func (p *parser) operation() (Member, error) {
	ret, err := p.typ()
	if err != nil {
		return Member{}, err
	}
	m := Member{Kind: MemberOperation, Type: ret}
	if p.at(tokIdent, "") {
		m.Name = p.next().text
	}
	if m.Args, err = p.argumentList(); err != nil {
		return Member{}, err
	}
	return m, p.expect(";")
}

func (p *parser) constMember() (Member, error) {
	t, err := p.typ()
	if err != nil {
		return Member{}, err
	}
	name, err := p.ident()
	if err != nil {
		return Member{}, err
	}
	if err := p.expect("="); err != nil {
		return Member{}, err
	}
	value := p.rawValue()
	if value == "" {
		return Member{}, p.errorf("expected const value, found %s", describe(p.peek()))
	}
	return Member{Kind: MemberConst, Name: name, Type: t, Value: value}, p.expect(";")
}

// declaration parses iterable<...>, maplike<...> and setlike<...>
func (p *parser) declaration(kind MemberKind) (Member, error) {
	p.next()
	if err := p.expect("<"); err != nil {
		return Member{}, err
	}
	params, err := p.typeParams()
	if err != nil {
		return Member{}, err
	}
	m := Member{Kind: kind, Params: params}
	// async iterable may declare arguments
	if p.atSymbol("(") {
		if m.Args, err = p.argumentList(); err != nil {
			return Member{}, err
		}
	}
	return m, p.expect(";")
}

func (p *parser) dictionaryMember() (Member, error) {
	extAttrs, err := p.extendedAttributes()
	if err != nil {
		return Member{}, err
	}
	m := Member{Kind: MemberField, ExtAttrs: extAttrs}
	m.Required = p.accept("required")
	if m.Type, err = p.typ(); err != nil {
		return Member{}, err
	}
	if m.Name, err = p.ident(); err != nil {
		return Member{}, err
	}
	if p.accept("=") {
		m.Value = p.rawValue()
	}
	return m, p.expect(";")
}

func (p *parser) argumentList() ([]Argument, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args := []Argument{}
	for !p.atSymbol(")") {
		if _, err := p.extendedAttributes(); err != nil {
			return nil, err
		}
		var arg Argument
		arg.Optional = p.accept("optional")
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		arg.Type = t
		arg.Variadic = p.accept("...")
		if arg.Name, err = p.ident(); err != nil {
			return nil, err
		}
		if p.accept("=") {
			arg.Default = p.rawValue()
		}
		args = append(args, arg)
		if !p.accept(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// typ parses a type, including unions, generics, multi-word primitives and the nullable marker
func (p *parser) typ() (*Type, error) {
	if _, err := p.extendedAttributes(); err != nil {
		return nil, err
	}

	var t *Type
	switch {
	case p.accept("("):
		t = &Type{}
		for {
			member, err := p.typ()
			if err != nil {
				return nil, err
			}
			t.Union = append(t.Union, member)
			if !p.accept("or") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		if len(t.Union) < 2 {
			return nil, p.errorf("union type needs at least two members")
		}

	case p.accept("unsigned"):
		name, err := p.integerType()
		if err != nil {
			return nil, err
		}
		t = &Type{Name: "unsigned " + name}

	case p.accept("unrestricted"):
		if !p.atKeyword("float") && !p.atKeyword("double") {
			return nil, p.errorf("expected float or double after unrestricted, found %s", describe(p.peek()))
		}
		t = &Type{Name: "unrestricted " + p.next().text}

	case p.atKeyword("long") || p.atKeyword("short"):
		name, err := p.integerType()
		if err != nil {
			return nil, err
		}
		t = &Type{Name: name}

	default:
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		t = &Type{Name: name}
		if p.accept("<") {
			if t.Params, err = p.typeParams(); err != nil {
				return nil, err
			}
		}
	}

	t.Nullable = p.accept("?")
	return t, nil
}

func (p *parser) integerType() (string, error) {
	switch {
	case p.accept("short"):
		return "short", nil
	case p.accept("long"):
		if p.accept("long") {
			return "long long", nil
		}
		return "long", nil
	}
	return "", p.errorf("expected short or long, found %s", describe(p.peek()))
}

// typeParams parses the remainder of a generic parameter list after "<"
func (p *parser) typeParams() ([]*Type, error) {
	var params []*Type
	for {
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		params = append(params, t)
		if !p.accept(",") {
			break
		}
	}
	return params, p.expect(">")
}

// extendedAttributes consumes an optional [ ... ] list and returns each entry as raw text
func (p *parser) extendedAttributes() ([]string, error) {
	if !p.accept("[") {
		return nil, nil
	}

	var attrs []string
	var cur []string
	depth := 0
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return nil, p.errorf("unterminated extended attribute list")
		case t.text == "]" && t.kind == tokOther && depth == 0:
			if len(cur) > 0 {
				attrs = append(attrs, joinTokens(cur))
			}
			return attrs, nil
		case t.text == "," && t.kind == tokOther && depth == 0:
			attrs = append(attrs, joinTokens(cur))
			cur = nil
			continue
		case t.kind == tokOther && (t.text == "(" || t.text == "["):
			depth++
		case t.kind == tokOther && (t.text == ")" || t.text == "]"):
			depth--
		}
		cur = append(cur, tokenText(t))
	}
}

// rawValue collects the tokens of a constant or default value up to the next
// top-level ";", "," or ")"
func (p *parser) rawValue() string {
	var parts []string
	depth := 0
	for {
		t := p.peek()
		if t.kind == tokEOF {
			break
		}
		if t.kind == tokOther && depth == 0 && (t.text == ";" || t.text == "," || t.text == ")") {
			break
		}
		if t.kind == tokOther {
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
		}
		parts = append(parts, tokenText(t))
		p.next()
	}
	return joinTokens(parts)
}

func tokenText(t token) string {
	if t.kind == tokString {
		return `"` + t.text + `"`
	}
	return t.text
}

// joinTokens joins tokens with spaces only between adjacent words
func joinTokens(parts []string) string {
	var sb strings.Builder
	prevWord := false
	for _, part := range parts {
		word := isWord(part)
		if word && prevWord {
			sb.WriteByte(' ')
		}
		sb.WriteString(part)
		prevWord = word
	}
	return sb.String()
}

func isWord(part string) bool {
	if part == "" {
		return false
	}
	r := []rune(part)
	return isIdentStart(r[0]) || unicode.IsDigit(r[0]) || r[0] == '"' || (r[0] == '-' && len(r) > 1)
}
