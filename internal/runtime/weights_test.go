package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drwadu/savan/pkg/domain"
)

func TestCount(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, example, "0")

	tests := []struct {
		route  []string
		facets int
		models int
	}{
		{[]string{"a", "b"}, 0, 0},
		{[]string{"a"}, 0, 1},
		{[]string{"c"}, 0, 1},
		{[]string{"d"}, 0, 1},
		{[]string{"~b"}, 0, 1},
		{[]string{"b"}, 4, 2},
		{[]string{"~a"}, 4, 2},
		{[]string{"~c"}, 6, 2},
		{[]string{"~d"}, 6, 2},
		{nil, 8, 3},
	}
	for _, tt := range tests {
		t.Run(fmtRoute(tt.route), func(t *testing.T) {
			fc, err := s.Count(ctx, domain.FacetCounting, tt.route)
			require.NoError(t, err)
			assert.Equal(t, tt.facets, fc)

			facets, err := s.FacetInducingAtoms(ctx, tt.route)
			require.NoError(t, err)
			assert.Equal(t, 2*len(facets), fc)

			as, err := s.Count(ctx, domain.AnswerSetCounting, tt.route)
			require.NoError(t, err)
			assert.Equal(t, tt.models, as)
		})
	}

	t.Run("Unknown weight", func(t *testing.T) {
		_, err := s.Count(ctx, domain.Weight(42), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCountProjecting(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, "{p;q}. r :- p. #show r/0.")

	all, err := s.Count(ctx, domain.FacetCounting, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all, "only shown atoms are reported")

	projected, err := s.CountProjecting(ctx, domain.FacetCounting, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, projected)

	projected, err = s.CountProjecting(ctx, domain.FacetCounting, []string{"p"})
	require.NoError(t, err)
	assert.Zero(t, projected)

	models, err := s.CountProjecting(ctx, domain.AnswerSetCounting, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, models)
}
