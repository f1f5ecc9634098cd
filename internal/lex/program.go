package lex

import (
	"github.com/drwadu/savan/pkg/domain"
)

// BodyLiteral is an atom in a rule body, possibly under default negation.
type BodyLiteral struct {
	Atom    domain.Symbol
	Negated bool
}

// Rule is a ground rule. An empty, non-choice head denotes an integrity constraint.
// A non-choice head with several atoms is a disjunction.
type Rule struct {
	Head   []domain.Symbol
	Choice bool
	Body   []BodyLiteral
}

// IsConstraint reports whether the rule is an integrity constraint.
func (r Rule) IsConstraint() bool {
	return !r.Choice && len(r.Head) == 0
}

// Show is a #show statement selecting a signature or a single atom.
type Show struct {
	Name  string
	Arity int
	Atom  *domain.Symbol
}

// Program is a parsed ground logic program.
type Program struct {
	Rules []Rule
	Shows []Show
	// HideAll is set by a bare `#show.` statement.
	HideAll bool
}

// HasShowStatements reports whether the program restricts its output.
func (p *Program) HasShowStatements() bool {
	return p.HideAll || len(p.Shows) > 0
}

// IsShown reports whether atom is selected for output.
func (p *Program) IsShown(atom domain.Symbol) bool {
	if !p.HasShowStatements() {
		return true
	}
	name, arity := atom.Signature()
	for _, s := range p.Shows {
		if s.Atom != nil {
			if s.Atom.Equal(atom) {
				return true
			}
			continue
		}
		if s.Name == name && s.Arity == arity {
			return true
		}
	}
	return false
}

// Atoms returns every atom occurring in the program, in order of first occurrence.
func (p *Program) Atoms() []domain.Symbol {
	seen := make(map[string]bool)
	var out []domain.Symbol
	add := func(s domain.Symbol) {
		key := s.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	for _, r := range p.Rules {
		for _, h := range r.Head {
			add(h)
		}
		for _, l := range r.Body {
			add(l.Atom)
		}
	}
	return out
}

// ParseProgram parses a ground program made of facts, normal, disjunctive and choice
// rules, integrity constraints and #show statements. Variables are rejected.
func ParseProgram(src string) (*Program, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	prog := &Program{}
	for p.tok.kind != tokEOF {
		if p.tok.kind == tokDirective && p.tok.text != "#false" {
			if err := p.directive(prog); err != nil {
				return nil, err
			}
			continue
		}
		rule, err := p.rule()
		if err != nil {
			return nil, err
		}
		prog.Rules = append(prog.Rules, rule)
	}
	return prog, nil
}

func (p *parser) directive(prog *Program) error {
	switch p.tok.text {
	case "#show":
	case "#const", "#program", "#include", "#external", "#minimize", "#maximize", "#heuristic", "#project":
		return p.errorf("directive %s is not supported", p.tok.text)
	default:
		return p.errorf("unknown directive %s", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return err
	}
	if p.is(tokPunct, ".") {
		prog.HideAll = true
		return p.advance()
	}

	negative := false
	if p.is(tokPunct, "-") {
		negative = true
		if err := p.advance(); err != nil {
			return err
		}
	}
	if p.tok.kind != tokIdent {
		return p.errorf("expected signature or atom after #show, found %s", p.tok)
	}
	name := p.tok.text
	if negative {
		name = "-" + name
	}

	if err := p.advance(); err != nil {
		return err
	}
	if p.is(tokPunct, "/") {
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.kind != tokNumber {
			return p.errorf("expected arity, found %s", p.tok)
		}
		prog.Shows = append(prog.Shows, Show{Name: name, Arity: p.tok.num})
		if err := p.advance(); err != nil {
			return err
		}
		return p.expect(".")
	}

	atom := domain.Function(name)
	if negative {
		atom = domain.Function(name[1:]).Neg()
	}
	if p.is(tokPunct, "(") {
		args, _, err := p.arguments()
		if err != nil {
			return err
		}
		atom.Args = args
	}
	prog.Shows = append(prog.Shows, Show{Name: name, Arity: len(atom.Args), Atom: &atom})
	return p.expect(".")
}

func (p *parser) rule() (Rule, error) {
	var r Rule
	var err error

	switch {
	case p.tok.kind == tokIf:
		// integrity constraint
	case p.tok.kind == tokDirective && p.tok.text == "#false":
		// integrity constraint as printed by the grounder's text output
		err = p.advance()
	case p.is(tokPunct, "{"):
		r.Choice = true
		r.Head, err = p.choiceHead()
	default:
		r.Head, err = p.disjunction()
	}
	if err != nil {
		return r, err
	}

	if p.tok.kind == tokIf {
		if err := p.advance(); err != nil {
			return r, err
		}
		r.Body, err = p.body()
		if err != nil {
			return r, err
		}
	}
	return r, p.expect(".")
}

func (p *parser) disjunction() ([]domain.Symbol, error) {
	var head []domain.Symbol
	for {
		a, err := p.atom()
		if err != nil {
			return nil, err
		}
		head = append(head, a)
		if !p.is(tokPunct, ";") && !p.is(tokPunct, "|") {
			return head, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) choiceHead() ([]domain.Symbol, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var head []domain.Symbol
	for !p.is(tokPunct, "}") {
		a, err := p.atom()
		if err != nil {
			return nil, err
		}
		head = append(head, a)
		if !p.is(tokPunct, ";") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if p.tok.kind == tokNumber {
		return nil, p.errorf("cardinality bounds on choice rules are not supported")
	}
	return head, nil
}

func (p *parser) body() ([]BodyLiteral, error) {
	var body []BodyLiteral
	for {
		switch {
		case p.tok.kind == tokDirective && p.tok.text == "#true":
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.kind == tokDirective && p.tok.text == "#false":
			return nil, p.errorf("#false in rule bodies is not supported")
		default:
			lit, err := p.bodyLiteral()
			if err != nil {
				return nil, err
			}
			body = append(body, lit)
		}
		if !p.is(tokPunct, ",") {
			return body, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) bodyLiteral() (BodyLiteral, error) {
	negated := false
	if p.tok.kind == tokIdent && p.tok.text == "not" {
		// `not` followed by an atom is default negation; a lone `not` is an atom named not.
		if err := p.advance(); err != nil {
			return BodyLiteral{}, err
		}
		if p.tok.kind == tokIdent || p.is(tokPunct, "-") {
			negated = true
		} else {
			return BodyLiteral{Atom: domain.Function("not")}, nil
		}
	}
	a, err := p.atom()
	if err != nil {
		return BodyLiteral{}, err
	}
	return BodyLiteral{Atom: a, Negated: negated}, nil
}
