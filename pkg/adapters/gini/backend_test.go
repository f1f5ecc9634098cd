package gini_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drwadu/savan/pkg/adapters/gini"
	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

const example = "a;b. c;d :- b. e."

func ground(t *testing.T, program string, args ...string) ports.Control {
	t.Helper()
	ctl, err := gini.New().Ground(context.Background(), program, args)
	require.NoError(t, err)
	return ctl
}

func literal(t *testing.T, ctl ports.Control, atom string) domain.Literal {
	t.Helper()
	for _, a := range ctl.Atoms() {
		if a.Symbol.String() == atom {
			return a.Literal
		}
	}
	t.Fatalf("atom %s not in program", atom)
	return 0
}

// drain collects the string form of every model in the stream.
func drain(t *testing.T, ctl ports.Control, assumptions ...domain.Literal) []string {
	t.Helper()
	ctx := context.Background()
	h, err := ctl.Solve(ctx, assumptions)
	require.NoError(t, err)
	defer func() { require.NoError(t, h.Close()) }()

	var out []string
	for {
		m, err := h.Next(ctx)
		require.NoError(t, err)
		if m == nil {
			return out
		}
		out = append(out, m.Key())
	}
}

func last(models []string) string {
	if len(models) == 0 {
		return "<none>"
	}
	return models[len(models)-1]
}

func TestGround_Atoms(t *testing.T) {
	ctl := ground(t, example)

	var names []string
	for _, a := range ctl.Atoms() {
		names = append(names, a.Symbol.String())
		assert.True(t, a.Shown)
		assert.True(t, a.Literal.IsPositive())
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, names)
	assert.Equal(t, domain.DefaultSolveConfig, ctl.Config())
}

func TestGround_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		program string
		args    []string
	}{
		{"variables", "p(X) :- q(X).", nil},
		{"syntax", "a :- .", nil},
		{"bad bound", "a.", []string{"--models=x"}},
		{"head cycle", "a;b. a :- b. b :- a.", nil},
		{"head cycle through choice", "{c}. a;b :- c. a :- b. b :- a, c.", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gini.New().Ground(context.Background(), tt.program, tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGround_HeadCycleFree(t *testing.T) {
	// a and b depend on each other only through negation
	ctl := ground(t, "a;b. a :- not b. c :- a. c :- b.")
	assert.ElementsMatch(t, []string{"a c", "b c"}, drain(t, ctl))
}

func TestSolve_ClassicalNegation(t *testing.T) {
	assert.Empty(t, drain(t, ground(t, "a. -a.")))
	assert.Empty(t, drain(t, ground(t, "a. -a :- a.")))
	assert.ElementsMatch(t, []string{"", "p", "-p"}, drain(t, ground(t, "{p;-p}.")))
	assert.ElementsMatch(t, []string{"-q"}, drain(t, ground(t, "-q. {q}.")))
}

func TestSolve_Enumerate(t *testing.T) {
	ctl := ground(t, example)
	assert.ElementsMatch(t, []string{"a e", "b c e", "b d e"}, drain(t, ctl))
	assert.ElementsMatch(t, []string{"b c e", "b d e"}, drain(t, ctl, literal(t, ctl, "b")))
	assert.Empty(t, drain(t, ctl, literal(t, ctl, "a"), literal(t, ctl, "b")))
	assert.ElementsMatch(t, []string{"a e", "b d e"}, drain(t, ctl, literal(t, ctl, "c").Negate()))
}

func TestSolve_Consequences(t *testing.T) {
	ctl := ground(t, example)
	b := literal(t, ctl, "b")

	t.Run("Brave", func(t *testing.T) {
		require.NoError(t, ctl.Configure(domain.SolveConfig{Mode: domain.EnumBrave}))
		assert.Equal(t, "a b c d e", last(drain(t, ctl)))
		assert.Equal(t, "b c d e", last(drain(t, ctl, b)))
	})

	t.Run("Cautious", func(t *testing.T) {
		require.NoError(t, ctl.Configure(domain.SolveConfig{Mode: domain.EnumCautious}))
		assert.Equal(t, "e", last(drain(t, ctl)))
		assert.Equal(t, "b e", last(drain(t, ctl, b)))
	})

	t.Run("Unsatisfiable", func(t *testing.T) {
		require.NoError(t, ctl.Configure(domain.SolveConfig{Mode: domain.EnumBrave}))
		assert.Empty(t, drain(t, ctl, b, literal(t, ctl, "a")))
	})

	require.NoError(t, ctl.Configure(domain.DefaultSolveConfig))
	assert.Len(t, drain(t, ctl), 3)
}

func TestSolve_ModelBound(t *testing.T) {
	for limit, want := range map[string]int{"0": 3, "1": 1, "2": 2, "3": 3, "6": 3} {
		t.Run("limit "+limit, func(t *testing.T) {
			ctl := ground(t, example, limit)
			assert.Len(t, drain(t, ctl), want)

			// the bound only applies to plain enumeration
			require.NoError(t, ctl.Configure(domain.SolveConfig{Mode: domain.EnumBrave}))
			assert.Equal(t, "a b c d e", last(drain(t, ctl)))
		})
	}
}

func TestSolve_Stability(t *testing.T) {
	const loop = "a :- b. b :- a. a :- c. c :- not d. d :- not c."

	t.Run("Stable models", func(t *testing.T) {
		ctl := ground(t, loop)
		assert.ElementsMatch(t, []string{"a b c", "d"}, drain(t, ctl))
		// learned loop formulas persist across solves
		assert.ElementsMatch(t, []string{"a b c", "d"}, drain(t, ctl))
	})

	t.Run("Supported models", func(t *testing.T) {
		ctl := ground(t, loop, "0", "--supp-models")
		assert.Len(t, drain(t, ctl), 3)
		assert.Len(t, drain(t, ctl, literal(t, ctl, "d").Negate()), 1)
		assert.Len(t, drain(t, ctl, literal(t, ctl, "d")), 2)
	})
}

func TestSolve_Projection(t *testing.T) {
	program := "{p;q}. r :- p. #show r/0."
	ctl := ground(t, program)
	// without projection every answer set is reported, shown atoms only
	assert.ElementsMatch(t, []string{"", "", "r", "r"}, drain(t, ctl))

	require.NoError(t, ctl.Configure(domain.SolveConfig{Mode: domain.EnumAuto, Project: true}))
	assert.ElementsMatch(t, []string{"", "r"}, drain(t, ctl))

	projected := ground(t, program, "--project")
	assert.True(t, projected.Config().Project)
	assert.Len(t, drain(t, projected), 2)
}

func TestSolve_Inconsistent(t *testing.T) {
	ctl := ground(t, "a. :- a.")
	assert.Empty(t, drain(t, ctl))

	ctl = ground(t, "a. #false :- a.")
	assert.Empty(t, drain(t, ctl))
}

func TestSolve_Protocol(t *testing.T) {
	ctl := ground(t, example)
	ctx := context.Background()

	h, err := ctl.Solve(ctx, nil)
	require.NoError(t, err)

	_, err = ctl.Solve(ctx, nil)
	assert.Error(t, err, "second handle while one is open")

	require.NoError(t, h.Close())

	_, err = ctl.Solve(ctx, []domain.Literal{99})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, ctl.Configure(domain.SolveConfig{Mode: "weird"}), domain.ErrInvalidInput)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	h, err = ctl.Solve(ctx, nil)
	require.NoError(t, err)
	_, err = h.Next(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, h.Close())
}
