package lex

import (
	"fmt"

	"github.com/drwadu/savan/pkg/domain"
)

type parser struct {
	sc  *scanner
	tok token
}

func newParser(src string) (*parser, error) {
	p := &parser{sc: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.tok.line, Pos: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) is(kind tokenKind, text string) bool {
	return p.tok.kind == kind && p.tok.text == text
}

func (p *parser) expect(text string) error {
	if p.tok.kind != tokPunct || p.tok.text != text {
		return p.errorf("expected %q, found %s", text, p.tok)
	}
	return p.advance()
}

// ParseSymbol parses a single ground term such as `p(1,"x")` or `-q(a)`.
func ParseSymbol(text string) (domain.Symbol, error) {
	p, err := newParser(text)
	if err != nil {
		return domain.Symbol{}, err
	}
	sym, err := p.term()
	if err != nil {
		return domain.Symbol{}, err
	}
	if p.tok.kind != tokEOF {
		return domain.Symbol{}, p.errorf("unexpected %s after term", p.tok)
	}
	return sym, nil
}

// ParseAtom parses an atom: a named function symbol, optionally classically negated.
func ParseAtom(text string) (domain.Symbol, error) {
	p, err := newParser(text)
	if err != nil {
		return domain.Symbol{}, err
	}
	sym, err := p.atom()
	if err != nil {
		return domain.Symbol{}, err
	}
	if p.tok.kind != tokEOF {
		return domain.Symbol{}, p.errorf("unexpected %s after atom", p.tok)
	}
	return sym, nil
}

func (p *parser) atom() (domain.Symbol, error) {
	negative := false
	if p.is(tokPunct, "-") {
		negative = true
		if err := p.advance(); err != nil {
			return domain.Symbol{}, err
		}
	}
	switch p.tok.kind {
	case tokIdent:
	case tokVariable:
		return domain.Symbol{}, p.errorf("variable %s in non-ground position", p.tok.text)
	default:
		return domain.Symbol{}, p.errorf("expected atom, found %s", p.tok)
	}
	sym, err := p.function()
	if err != nil {
		return domain.Symbol{}, err
	}
	sym.Negative = negative
	return sym, nil
}

func (p *parser) function() (domain.Symbol, error) {
	name := p.tok.text
	if err := p.advance(); err != nil {
		return domain.Symbol{}, err
	}
	if !p.is(tokPunct, "(") {
		return domain.Function(name), nil
	}
	args, _, err := p.arguments()
	if err != nil {
		return domain.Symbol{}, err
	}
	return domain.Function(name, args...), nil
}

// arguments parses a parenthesised, comma separated term list.
// trailing reports a trailing comma, which marks one-element tuples.
func (p *parser) arguments() (args []domain.Symbol, trailing bool, err error) {
	if err := p.expect("("); err != nil {
		return nil, false, err
	}
	for !p.is(tokPunct, ")") {
		t, err := p.term()
		if err != nil {
			return nil, false, err
		}
		args = append(args, t)
		if !p.is(tokPunct, ",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		if p.is(tokPunct, ")") {
			trailing = true
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, false, err
	}
	return args, trailing, nil
}

func (p *parser) term() (domain.Symbol, error) {
	switch p.tok.kind {
	case tokNumber:
		n := p.tok.num
		return domain.Number(n), p.advance()
	case tokString:
		s := p.tok.text
		return domain.String(s), p.advance()
	case tokIdent:
		return p.function()
	case tokVariable:
		return domain.Symbol{}, p.errorf("variable %s in non-ground position", p.tok.text)
	case tokPunct:
		switch p.tok.text {
		case "-":
			if err := p.advance(); err != nil {
				return domain.Symbol{}, err
			}
			switch p.tok.kind {
			case tokNumber:
				n := p.tok.num
				return domain.Number(-n), p.advance()
			case tokIdent:
				sym, err := p.function()
				if err != nil {
					return domain.Symbol{}, err
				}
				return sym.Neg(), nil
			}
			return domain.Symbol{}, p.errorf("expected number or function after '-', found %s", p.tok)
		case "(":
			args, trailing, err := p.arguments()
			if err != nil {
				return domain.Symbol{}, err
			}
			if len(args) == 1 && !trailing {
				// parenthesised term
				return args[0], nil
			}
			return domain.Tuple(args...), nil
		}
	}
	return domain.Symbol{}, p.errorf("expected term, found %s", p.tok)
}
