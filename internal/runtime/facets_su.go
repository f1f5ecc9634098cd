package runtime

import (
	"context"
	"slices"
	"strings"

	"github.com/drwadu/savan/pkg/domain"
)

// FacetsSU computes the facet-inducing atoms among targets under route by testing one
// target at a time instead of enumerating all consequences.
//
// The brave phase adds `:- not t1, ..., not tn.` and looks for a model containing each
// unresolved target; every unresolved target true in that model is brave. The cautious
// phase adds `:- t1, ..., tn.` over the brave targets and looks for a model without each
// one; every unresolved target false in that model is a facet. Unknown targets are ignored.
func (s *Session) FacetsSU(ctx context.Context, targets, route []string) ([]string, error) {
	known := s.canonicalTargets(targets)
	if len(known) == 0 {
		return nil, nil
	}

	brave, err := s.resolveTargets(ctx, orConstraint(known, true), known, route, true)
	if err != nil || len(brave) == 0 {
		return nil, err
	}
	return s.resolveTargets(ctx, orConstraint(brave, false), brave, route, false)
}

// resolveTargets runs one phase of FacetsSU with the temporary constraint in place.
// In the brave phase it returns the targets true in some model; in the cautious phase
// the targets false in some model.
func (s *Session) resolveTargets(ctx context.Context, constraint string, targets, route []string, brave bool) (found []string, err error) {
	err = s.withRule(ctx, constraint, func() error {
		found, err = s.resolveUnder(ctx, targets, route, brave)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Session) resolveUnder(ctx context.Context, targets, route []string, brave bool) (found []string, err error) {
	unresolved := slices.Clone(targets)
	for len(unresolved) > 0 {
		target := unresolved[0]
		assumed := target
		if !brave {
			assumed = NegationMarker + target
		}

		m, err := s.searchOne(ctx, domain.QueryFacetsSU, append(slices.Clone(route), assumed))
		if err != nil {
			return nil, err
		}
		if m == nil {
			// never true (brave phase) or always true (cautious phase)
			unresolved = unresolved[1:]
			continue
		}

		shown := make(map[string]bool, len(m.Symbols))
		for _, sym := range m.Symbols {
			shown[sym.String()] = true
		}
		remaining := unresolved[:0]
		for i, t := range unresolved {
			// the tested target holds by assumption even when it is not shown
			inModel := shown[t]
			if i == 0 {
				inModel = brave
			}
			if inModel == brave {
				found = append(found, t)
				continue
			}
			remaining = append(remaining, t)
		}
		unresolved = remaining
		s.logger.Debug("facets_su progress", "brave_phase", brave, "resolved", len(found), "unresolved", len(unresolved))
	}
	return found, nil
}

// canonicalTargets keeps the known targets in canonical form, without duplicates.
func (s *Session) canonicalTargets(targets []string) []string {
	seen := make(map[string]bool, len(targets))
	var out []string
	for _, t := range targets {
		a, ok := s.lookup(t)
		if !ok {
			s.logger.Debug("dropping unknown target", "target", t)
			continue
		}
		key := a.Symbol.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// orConstraint renders `:- not t1, ..., not tn.` (some target true) when negated,
// and `:- t1, ..., tn.` (some target false) otherwise.
func orConstraint(atoms []string, negated bool) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		if negated {
			parts[i] = "not " + a
		} else {
			parts[i] = a
		}
	}
	return ":- " + strings.Join(parts, ", ") + "."
}
