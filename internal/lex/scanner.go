// Package lex parses ground terms, atom expressions and ground logic programs.
package lex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokVariable
	tokNumber
	tokString
	tokDirective // #show, #true, ...
	tokIf        // :-
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	num  int
	pos  int
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return strconv.Quote(t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// SyntaxError reports a lexical or grammatical problem with its position.
type SyntaxError struct {
	Line int
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d (offset %d): %s", e.Line, e.Pos, e.Msg)
}

type scanner struct {
	src  string
	off  int
	line int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1}
}

func (s *scanner) errorf(format string, args ...any) error {
	return &SyntaxError{Line: s.line, Pos: s.off, Msg: fmt.Sprintf(format, args...)}
}

// skip consumes whitespace and % comments, including %* block comments *%.
func (s *scanner) skip() error {
	for s.off < len(s.src) {
		c := s.src[s.off]
		switch {
		case c == '\n':
			s.line++
			s.off++
		case c == ' ' || c == '\t' || c == '\r':
			s.off++
		case c == '%':
			if strings.HasPrefix(s.src[s.off:], "%*") {
				end := strings.Index(s.src[s.off+2:], "*%")
				if end < 0 {
					return s.errorf("unterminated block comment")
				}
				block := s.src[s.off : s.off+2+end+2]
				s.line += strings.Count(block, "\n")
				s.off += len(block)
				continue
			}
			for s.off < len(s.src) && s.src[s.off] != '\n' {
				s.off++
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) next() (token, error) {
	if err := s.skip(); err != nil {
		return token{}, err
	}
	start := s.off
	tok := token{pos: start, line: s.line}
	if s.off >= len(s.src) {
		tok.kind = tokEOF
		return tok, nil
	}

	c := rune(s.src[s.off])
	switch {
	case c == '_' || unicode.IsLetter(c):
		for s.off < len(s.src) && isIdentRune(rune(s.src[s.off])) {
			s.off++
		}
		tok.text = s.src[start:s.off]
		tok.kind = tokIdent
		if isVariable(tok.text) {
			tok.kind = tokVariable
		}
		return tok, nil
	case unicode.IsDigit(c):
		for s.off < len(s.src) && unicode.IsDigit(rune(s.src[s.off])) {
			s.off++
		}
		tok.text = s.src[start:s.off]
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			return tok, s.errorf("invalid number %q", tok.text)
		}
		tok.kind = tokNumber
		tok.num = n
		return tok, nil
	case c == '"':
		return s.scanString(tok)
	case c == '#':
		s.off++
		for s.off < len(s.src) && isIdentRune(rune(s.src[s.off])) {
			s.off++
		}
		tok.text = s.src[start:s.off]
		if tok.text == "#" {
			return tok, s.errorf("expected directive name after '#'")
		}
		tok.kind = tokDirective
		return tok, nil
	case c == ':':
		if strings.HasPrefix(s.src[s.off:], ":-") {
			s.off += 2
			tok.kind = tokIf
			tok.text = ":-"
			return tok, nil
		}
		return tok, s.errorf("unexpected ':'")
	case strings.ContainsRune("(),;|{}.-/~", c):
		s.off++
		tok.kind = tokPunct
		tok.text = string(c)
		return tok, nil
	}
	return tok, s.errorf("unexpected character %q", c)
}

func (s *scanner) scanString(tok token) (token, error) {
	var b strings.Builder
	s.off++ // opening quote
	for s.off < len(s.src) {
		c := s.src[s.off]
		switch c {
		case '"':
			s.off++
			tok.kind = tokString
			tok.text = b.String()
			return tok, nil
		case '\\':
			if s.off+1 >= len(s.src) {
				return tok, s.errorf("unterminated string")
			}
			switch esc := s.src[s.off+1]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"':
				b.WriteByte(esc)
			default:
				return tok, s.errorf("unknown escape \\%c", esc)
			}
			s.off += 2
		case '\n':
			return tok, s.errorf("newline in string")
		default:
			b.WriteByte(c)
			s.off++
		}
	}
	return tok, s.errorf("unterminated string")
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isVariable follows the solver convention: identifiers whose first
// non-underscore character is uppercase, or a lone underscore, are variables.
func isVariable(ident string) bool {
	trimmed := strings.TrimLeft(ident, "_")
	if trimmed == "" {
		return true
	}
	return unicode.IsUpper(rune(trimmed[0]))
}
