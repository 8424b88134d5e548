package webidl

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOther
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	default:
		return "symbol"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// SyntaxError reports where a document stopped parsing
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("webidl: %d:%d: %s", e.Line, e.Col, e.Msg)
}

// tokenize splits src into tokens, dropping whitespace and comments
func tokenize(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	line, col := 1, 1

	advance := func(n int) {
		for i := 0; i < n; i++ {
			if runes[0] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			runes = runes[1:]
		}
	}

	for len(runes) > 0 {
		r := runes[0]
		switch {
		case unicode.IsSpace(r):
			advance(1)

		case r == '/' && len(runes) > 1 && runes[1] == '/':
			for len(runes) > 0 && runes[0] != '\n' {
				advance(1)
			}

		case r == '/' && len(runes) > 1 && runes[1] == '*':
			startLine, startCol := line, col
			advance(2)
			closed := false
			for len(runes) > 1 {
				if runes[0] == '*' && runes[1] == '/' {
					advance(2)
					closed = true
					break
				}
				advance(1)
			}
			if !closed {
				return nil, &SyntaxError{Line: startLine, Col: startCol, Msg: "unterminated comment"}
			}

		case r == '"':
			startLine, startCol := line, col
			n := 1
			for n < len(runes) && runes[n] != '"' {
				n++
			}
			if n == len(runes) {
				return nil, &SyntaxError{Line: startLine, Col: startCol, Msg: "unterminated string"}
			}
			toks = append(toks, token{kind: tokString, text: string(runes[1:n]), line: startLine, col: startCol})
			advance(n + 1)

		case r == '.' && len(runes) > 2 && runes[1] == '.' && runes[2] == '.':
			toks = append(toks, token{kind: tokOther, text: "...", line: line, col: col})
			advance(3)

		case isIdentStart(r):
			n := 1
			for n < len(runes) && isIdentPart(runes[n]) {
				n++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[:n]), line: line, col: col})
			advance(n)

		case unicode.IsDigit(r) || (r == '-' && len(runes) > 1 && (unicode.IsDigit(runes[1]) || runes[1] == '.')):
			n := 1
			for n < len(runes) && isNumberPart(runes[n]) {
				n++
			}
			toks = append(toks, token{kind: tokNumber, text: string(runes[:n]), line: line, col: col})
			advance(n)

		case strings.ContainsRune("()[]{}<>,;:=?-*.", r):
			toks = append(toks, token{kind: tokOther, text: string(r), line: line, col: col})
			advance(1)

		default:
			return nil, &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	toks = append(toks, token{kind: tokEOF, line: line, col: col})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumberPart(r rune) bool {
	return unicode.IsDigit(r) || unicode.IsLetter(r) || r == '.' || r == '+' || r == '-'
}
