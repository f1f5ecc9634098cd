package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drwadu/savan/internal/lex"
	"github.com/drwadu/savan/pkg/domain"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", "a"},
		{"p(1,2)", "p(1,2)"},
		{" p( 1 , x ) ", "p(1,x)"},
		{"-q(a)", "-q(a)"},
		{"-3", "-3"},
		{`s("hi")`, `s("hi")`},
		{"(1,2)", "(1,2)"},
		{"(1,)", "(1,)"},
		{"((a))", "a"},
		{"f(g(h(1)))", "f(g(h(1)))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sym, err := lex.ParseSymbol(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sym.String())
		})
	}
}

func TestParseAtom_Errors(t *testing.T) {
	for _, input := range []string{"", "X", "p(X)", "p(", "1", `"s"`, "p q", "~a", "p(1))"} {
		t.Run(input, func(t *testing.T) {
			_, err := lex.ParseAtom(input)
			require.Error(t, err)
			var syn *lex.SyntaxError
			assert.ErrorAs(t, err, &syn)
		})
	}
}

func TestParseAtom_Negation(t *testing.T) {
	sym, err := lex.ParseAtom("-p(1)")
	require.NoError(t, err)
	assert.True(t, sym.Negative)

	name, arity := sym.Signature()
	assert.Equal(t, "-p", name)
	assert.Equal(t, 1, arity)
}

func TestParseProgram(t *testing.T) {
	src := `
% two independent choices
a;b.
c | d :- b.
e.
{ x; y } :- e, not a.
:- x, y.
#false :- d, x.
%* block
   comment *%
p(1). p("two").
`
	prog, err := lex.ParseProgram(src)
	require.NoError(t, err)
	require.Len(t, prog.Rules, 8)

	t.Run("Disjunction", func(t *testing.T) {
		r := prog.Rules[1]
		assert.False(t, r.Choice)
		assert.Len(t, r.Head, 2)
		require.Len(t, r.Body, 1)
		assert.Equal(t, "b", r.Body[0].Atom.String())
	})

	t.Run("Choice", func(t *testing.T) {
		r := prog.Rules[3]
		assert.True(t, r.Choice)
		assert.Len(t, r.Head, 2)
		require.Len(t, r.Body, 2)
		assert.True(t, r.Body[1].Negated)
	})

	t.Run("Constraints", func(t *testing.T) {
		assert.True(t, prog.Rules[4].IsConstraint())
		assert.True(t, prog.Rules[5].IsConstraint())
		assert.False(t, prog.Rules[2].IsConstraint())
	})

	t.Run("Atoms", func(t *testing.T) {
		var names []string
		for _, a := range prog.Atoms() {
			names = append(names, a.String())
		}
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "x", "y", "p(1)", `p("two")`}, names)
	})

	t.Run("Everything shown", func(t *testing.T) {
		assert.False(t, prog.HasShowStatements())
		assert.True(t, prog.IsShown(domain.Function("a")))
	})
}

func TestParseProgram_Show(t *testing.T) {
	prog, err := lex.ParseProgram("p(1). p(2). q. r(1). -s. #show p/1. #show r(1). #show -s/0.")
	require.NoError(t, err)

	assert.True(t, prog.HasShowStatements())
	assert.True(t, prog.IsShown(domain.Function("p", domain.Number(2))))
	assert.True(t, prog.IsShown(domain.Function("r", domain.Number(1))))
	assert.True(t, prog.IsShown(domain.Function("s").Neg()))
	assert.False(t, prog.IsShown(domain.Function("q")))
	assert.False(t, prog.IsShown(domain.Function("s")))

	hidden, err := lex.ParseProgram("a. #show.")
	require.NoError(t, err)
	assert.True(t, hidden.HideAll)
	assert.False(t, hidden.IsShown(domain.Function("a")))
}

func TestParseProgram_Errors(t *testing.T) {
	tests := map[string]string{
		"variable":        "p(X) :- q(X).",
		"missing period":  "a :- b",
		"cardinality":     "1 { a; b } 2.",
		"upper bound":     "{ a; b } 1.",
		"unknown":         "#foo.",
		"const":           "#const n=3.",
		"unterminated":    "%* never closed",
		"bad string":      `p("x`,
		"false in body":   "a :- #false.",
		"stray character": "a @ b.",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := lex.ParseProgram(src)
			assert.Error(t, err)
		})
	}
}
