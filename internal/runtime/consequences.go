package runtime

import (
	"context"
	"fmt"

	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// Consequences returns the brave or cautious consequences of the program under route.
// An unsatisfiable route yields no consequences.
func (s *Session) Consequences(ctx context.Context, route []string, mode domain.EnumMode) ([]domain.Symbol, error) {
	syms, _, err := s.consequences(ctx, route, mode, false, true)
	return syms, err
}

// ProjectedConsequences is Consequences restricted to shown atoms.
func (s *Session) ProjectedConsequences(ctx context.Context, route []string, mode domain.EnumMode) ([]domain.Symbol, error) {
	syms, _, err := s.consequences(ctx, route, mode, true, true)
	return syms, err
}

// CountConsequences returns the number of brave or cautious consequences under route.
func (s *Session) CountConsequences(ctx context.Context, route []string, mode domain.EnumMode) (int, error) {
	_, n, err := s.consequences(ctx, route, mode, false, false)
	return n, err
}

func (s *Session) consequences(ctx context.Context, route []string, mode domain.EnumMode, project, keep bool) ([]domain.Symbol, int, error) {
	kind, err := consequenceKind(mode)
	if err != nil {
		return nil, 0, err
	}

	var last []domain.Symbol
	size := 0
	cfg := domain.SolveConfig{Mode: mode, Project: project}
	err = s.query(ctx, kind, route, cfg, func(ctl ports.Control) (int, error) {
		return s.drain(ctx, ctl, kind, s.ResolveRoute(route), func(m *domain.Model) bool {
			size = len(m.Symbols)
			if keep {
				last = m.Symbols
			}
			return true
		})
	})
	if err != nil {
		return nil, 0, err
	}
	return last, size, nil
}

func consequenceKind(mode domain.EnumMode) (domain.QueryKind, error) {
	switch mode {
	case domain.EnumBrave:
		return domain.QueryBrave, nil
	case domain.EnumCautious:
		return domain.QueryCautious, nil
	}
	return "", fmt.Errorf("%w: consequences need brave or cautious mode, got %q", domain.ErrInvalidInput, mode)
}

// FacetInducingAtoms returns the atoms that are brave but not cautious consequences under route.
func (s *Session) FacetInducingAtoms(ctx context.Context, route []string) ([]domain.Symbol, error) {
	return s.facets(ctx, route, false)
}

// ProjectedFacetInducingAtoms is FacetInducingAtoms restricted to shown atoms.
func (s *Session) ProjectedFacetInducingAtoms(ctx context.Context, route []string) ([]domain.Symbol, error) {
	return s.facets(ctx, route, true)
}

func (s *Session) facets(ctx context.Context, route []string, project bool) ([]domain.Symbol, error) {
	brave, _, err := s.consequences(ctx, route, domain.EnumBrave, project, true)
	if err != nil || len(brave) == 0 {
		return nil, err
	}
	cautious, _, err := s.consequences(ctx, route, domain.EnumCautious, project, true)
	if err != nil {
		return nil, err
	}
	return difference(brave, cautious), nil
}

// difference returns the symbols of a missing from b, keeping the order of a.
func difference(a, b []domain.Symbol) []domain.Symbol {
	exclude := make(map[string]bool, len(b))
	for _, sym := range b {
		exclude[sym.String()] = true
	}
	var out []domain.Symbol
	for _, sym := range a {
		if !exclude[sym.String()] {
			out = append(out, sym)
		}
	}
	return out
}
