package runtime

import (
	"context"
	"fmt"

	"github.com/drwadu/savan/pkg/domain"
)

// Count scores route with the given weight.
func (s *Session) Count(ctx context.Context, w domain.Weight, route []string) (int, error) {
	return s.count(ctx, w, route, false)
}

// CountProjecting scores route with the given weight, counting facets among shown atoms only.
func (s *Session) CountProjecting(ctx context.Context, w domain.Weight, route []string) (int, error) {
	return s.count(ctx, w, route, true)
}

func (s *Session) count(ctx context.Context, w domain.Weight, route []string, project bool) (int, error) {
	switch w {
	case domain.AnswerSetCounting:
		res, err := s.Enumerate(ctx, route, EnumerateOptions{Format: FormatQuiet})
		if err != nil {
			return 0, err
		}
		return res.Count, nil
	case domain.FacetCounting:
		facets, err := s.facets(ctx, route, project)
		if err != nil {
			return 0, err
		}
		return 2 * len(facets), nil
	}
	return 0, fmt.Errorf("%w: unknown weight %v", domain.ErrInvalidInput, w)
}
