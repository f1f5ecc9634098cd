package domain

import (
	"cmp"
	"strconv"
	"strings"
)

// SymbolKind classifies a ground term.
type SymbolKind int

const (
	SymbolNumber SymbolKind = iota
	SymbolFunction
	SymbolString
)

// Symbol is a ground term such as `p(1,2)`, `a`, `"text"` or `-q(b)`.
// Constants are functions of arity zero. Tuples are functions with an empty name.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	Number   int
	Text     string
	Args     []Symbol
	Negative bool // classical negation, only meaningful for named functions
}

// Number returns a numeric symbol.
func Number(n int) Symbol {
	return Symbol{Kind: SymbolNumber, Number: n}
}

// String returns a string symbol.
func String(s string) Symbol {
	return Symbol{Kind: SymbolString, Text: s}
}

// Function returns a function symbol. Use no args for a constant.
func Function(name string, args ...Symbol) Symbol {
	return Symbol{Kind: SymbolFunction, Name: name, Args: args}
}

// Tuple returns a tuple symbol.
func Tuple(args ...Symbol) Symbol {
	return Symbol{Kind: SymbolFunction, Args: args}
}

// Neg returns the classically negated version of a named function symbol.
func (s Symbol) Neg() Symbol {
	s.Negative = !s.Negative
	return s
}

// Signature returns the predicate name and arity of the symbol.
func (s Symbol) Signature() (string, int) {
	name := s.Name
	if s.Negative {
		name = "-" + name
	}
	return name, len(s.Args)
}

// String renders the symbol in solver syntax. It is also the atom map key.
func (s Symbol) String() string {
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s Symbol) write(b *strings.Builder) {
	switch s.Kind {
	case SymbolNumber:
		b.WriteString(strconv.Itoa(s.Number))
	case SymbolString:
		b.WriteString(strconv.Quote(s.Text))
	default:
		if s.Negative {
			b.WriteByte('-')
		}
		b.WriteString(s.Name)
		if len(s.Args) == 0 && s.Name != "" {
			return
		}
		b.WriteByte('(')
		for i, arg := range s.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			arg.write(b)
		}
		if s.Name == "" && len(s.Args) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	}
}

// Equal reports structural equality.
func (s Symbol) Equal(o Symbol) bool {
	return CompareSymbols(s, o) == 0
}

// CompareSymbols orders numbers before functions before strings.
// Functions are ordered by arity, name, sign and then arguments.
func CompareSymbols(a, b Symbol) int {
	if a.Kind != b.Kind {
		return cmp.Compare(kindRank(a.Kind), kindRank(b.Kind))
	}
	switch a.Kind {
	case SymbolNumber:
		return cmp.Compare(a.Number, b.Number)
	case SymbolString:
		return strings.Compare(a.Text, b.Text)
	}
	if c := cmp.Compare(len(a.Args), len(b.Args)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if a.Negative != b.Negative {
		if a.Negative {
			return 1
		}
		return -1
	}
	for i := range a.Args {
		if c := CompareSymbols(a.Args[i], b.Args[i]); c != 0 {
			return c
		}
	}
	return 0
}

func kindRank(k SymbolKind) int {
	switch k {
	case SymbolNumber:
		return 0
	case SymbolFunction:
		return 1
	default:
		return 2
	}
}
