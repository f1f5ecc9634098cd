package runtime_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drwadu/savan/internal/runtime"
	"github.com/drwadu/savan/pkg/adapters/gini"
	"github.com/drwadu/savan/pkg/domain"
)

func TestConsequences(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, example, "0")

	tests := []struct {
		route    []string
		brave    []string
		cautious []string
	}{
		{[]string{"a"}, []string{"a", "e"}, []string{"a", "e"}},
		{[]string{"b"}, []string{"b", "c", "d", "e"}, []string{"b", "e"}},
		{[]string{"a", "b"}, []string{}, []string{}},
		{nil, []string{"a", "b", "c", "d", "e"}, []string{"e"}},
		{[]string{"unknown", "b"}, []string{"b", "c", "d", "e"}, []string{"b", "e"}},
	}
	for _, tt := range tests {
		t.Run(fmtRoute(tt.route), func(t *testing.T) {
			brave, err := s.Consequences(ctx, tt.route, domain.EnumBrave)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.brave, strs(brave)); diff != "" {
				t.Errorf("brave consequences mismatch (-want +got):\n%s", diff)
			}

			cautious, err := s.Consequences(ctx, tt.route, domain.EnumCautious)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.cautious, strs(cautious)); diff != "" {
				t.Errorf("cautious consequences mismatch (-want +got):\n%s", diff)
			}

			n, err := s.CountConsequences(ctx, tt.route, domain.EnumBrave)
			require.NoError(t, err)
			assert.Equal(t, len(tt.brave), n)
		})
	}

	t.Run("Auto mode is rejected", func(t *testing.T) {
		_, err := s.Consequences(ctx, nil, domain.EnumAuto)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.False(t, s.Faulted())
	})
}

func TestConsequences_RestoreMode(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, example)

	_, err := s.Consequences(ctx, []string{"b"}, domain.EnumCautious)
	require.NoError(t, err)

	// a leaked cautious mode would report a single shrinking set
	res, err := s.Enumerate(ctx, nil, runtime.EnumerateOptions{Format: runtime.FormatQuiet})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
}

func TestFacetInducingAtoms(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, example, "0")

	tests := []struct {
		route []string
		want  []string
	}{
		{[]string{"a"}, nil},
		{[]string{"b"}, []string{"c", "d"}},
		{[]string{"~c"}, []string{"a", "b", "d"}},
		{[]string{"a", "b"}, nil},
		{nil, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(fmtRoute(tt.route), func(t *testing.T) {
			facets, err := s.FacetInducingAtoms(ctx, tt.route)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, strs(facets))

			su, err := s.FacetsSU(ctx, slicesOf(s), tt.route)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, su)
		})
	}
}

func TestFacetsSU(t *testing.T) {
	ctx := context.Background()

	t.Run("Program is restored", func(t *testing.T) {
		s := newSession(t, example)
		_, err := s.FacetsSU(ctx, []string{"a", "b", "c"}, []string{"b"})
		require.NoError(t, err)
		assert.Equal(t, example, s.Program())
	})

	t.Run("Program with the same constraint is restored", func(t *testing.T) {
		program := ":- not a, not b. " + example
		s := newSession(t, program)
		facets, err := s.FacetsSU(ctx, []string{"a", "b"}, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, facets)
		assert.Equal(t, program, s.Program())
	})

	t.Run("Subset of targets", func(t *testing.T) {
		s := newSession(t, example)
		facets, err := s.FacetsSU(ctx, []string{"c", "e", "nope"}, []string{"b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, facets)
	})

	t.Run("No known targets", func(t *testing.T) {
		s := newSession(t, example)
		facets, err := s.FacetsSU(ctx, []string{"nope"}, nil)
		require.NoError(t, err)
		assert.Empty(t, facets)
	})

	t.Run("Progress hooks", func(t *testing.T) {
		var kinds []domain.QueryKind
		hooks := domain.LifecycleHooks{
			OnQueryEnd: func(_ context.Context, ev *domain.QueryEvent) {
				kinds = append(kinds, ev.Kind)
			},
		}
		s, err := runtime.NewSession(ctx, gini.New(), example, nil, runtime.WithLifecycleHooks(hooks))
		require.NoError(t, err)

		_, err = s.FacetsSU(ctx, []string{"c", "d"}, []string{"b"})
		require.NoError(t, err)
		require.NotEmpty(t, kinds)
		for _, k := range kinds {
			assert.Equal(t, domain.QueryFacetsSU, k)
		}
	})
}

func TestProjectedFacets(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, "{p;q}. r :- p. s :- q. #show r/0. #show s/0.")

	facets, err := s.ProjectedFacetInducingAtoms(ctx, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"r", "s"}, strs(facets))

	facets, err = s.ProjectedFacetInducingAtoms(ctx, []string{"p"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s"}, strs(facets))

	brave, err := s.ProjectedConsequences(ctx, []string{"p", "q"}, domain.EnumBrave)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"r", "s"}, strs(brave))
}

func slicesOf(s *runtime.Session) []string {
	var out []string
	for a := range s.Atoms() {
		out = append(out, a)
	}
	return out
}

func fmtRoute(route []string) string {
	if len(route) == 0 {
		return "empty route"
	}
	out := ""
	for i, r := range route {
		if i > 0 {
			out += ","
		}
		out += r
	}
	return out
}
