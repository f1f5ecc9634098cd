package runtime

import (
	"context"
	"fmt"
	"math"

	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// SieveMode selects what Sieve reports.
type SieveMode int

const (
	// SieveQuiet only returns the observed targets.
	SieveQuiet SieveMode = iota
	// SieveVerbose prints the collected models and the diagnostics.
	SieveVerbose
	// SieveStructured returns one --outf=2 record per collected model.
	SieveStructured
)

// SieveResult is the outcome of a sieve.
type SieveResult struct {
	// Observed lists the targets true in at least one collected model.
	Observed []string
	Models   []*domain.Model
	// Report is nil in quiet mode.
	Report  *domain.SieveReport
	Records []domain.SolverOutput
}

// Sieve collects a small set of distinct models that together contain every target atom,
// and measures how evenly the targets are spread over them.
//
// A model is collected when it makes at least one unresolved target true and its complete
// set of shown atoms differs from every model collected before. A target hidden by #show
// holds in the model collected for it by assumption. If some target has no new model the
// search stops early and the report is marked as not covered.
func (s *Session) Sieve(ctx context.Context, targets []string, mode SieveMode) (res *SieveResult, err error) {
	known := s.canonicalTargets(targets)
	if len(known) == 0 {
		return nil, fmt.Errorf("%w: no known target atoms", domain.ErrInvalidInput)
	}

	// 1. Some target must hold
	freq := make(map[string]int, len(known))
	res = &SieveResult{}
	covered := true
	err = s.withRule(ctx, orConstraint(known, true), func() error {
		var err error
		covered, err = s.collect(ctx, known, freq, res, mode)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, t := range known {
		if freq[t] > 0 {
			res.Observed = append(res.Observed, t)
		}
	}
	if mode == SieveQuiet {
		return res, nil
	}

	// 2. Diagnostics
	res.Report = diagnostics(freq, len(known), len(res.Models), covered)
	if mode == SieveVerbose {
		if err := writeReport(s, known, res.Report); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
	}
	return res, nil
}

// collect gathers the models of a sieve into res and counts the targets true in them.
// It reports whether every target was found in some model.
func (s *Session) collect(ctx context.Context, known []string, freq map[string]int, res *SieveResult, mode SieveMode) (bool, error) {
	unresolved := make(map[string]bool, len(known))
	for _, t := range known {
		freq[t] = 0
		unresolved[t] = true
	}
	collected := make(map[string]bool)

	for len(unresolved) > 0 {
		pick := firstUnresolved(known, unresolved)
		route := []string{pick}
		// a hidden pick never appears in a model; it holds by assumption instead
		atom, _ := s.lookup(pick)
		hidden := !atom.Shown

		var model *domain.Model
		var n int
		err := s.query(ctx, domain.QuerySieve, route, domain.DefaultSolveConfig, func(ctl ports.Control) (int, error) {
			var err error
			n, err = s.drain(ctx, ctl, domain.QuerySieve, s.ResolveRoute(route), func(m *domain.Model) bool {
				if collected[m.Key()] || (!hidden && !resolvesAny(m, unresolved)) {
					return true
				}
				model = m
				return false
			})
			return n, err
		})
		if err != nil {
			return false, err
		}

		if n == 0 {
			s.logger.Info("cannot cover all target atoms, stopped search", "target", pick)
			return false, nil
		}
		if model == nil {
			s.logger.Info("no new model for target atom", "target", pick)
			return false, nil
		}

		// record
		collected[model.Key()] = true
		holds := map[string]bool{pick: true}
		for _, sym := range model.Symbols {
			holds[sym.String()] = true
		}
		for key := range holds {
			if _, ok := freq[key]; ok {
				freq[key]++
				delete(unresolved, key)
			}
		}
		res.Models = append(res.Models, model)

		switch mode {
		case SieveVerbose:
			if err := writeSolution(s, len(res.Models), model.Strings()); err != nil {
				return false, fmt.Errorf("write solution: %w", err)
			}
		case SieveStructured:
			res.Records = append(res.Records, domain.NewSolverOutput(model.Strings()))
		}
	}
	return true, nil
}

func firstUnresolved(order []string, unresolved map[string]bool) string {
	for _, t := range order {
		if unresolved[t] {
			return t
		}
	}
	return ""
}

func resolvesAny(m *domain.Model, unresolved map[string]bool) bool {
	for _, sym := range m.Symbols {
		if unresolved[sym.String()] {
			return true
		}
	}
	return false
}

// diagnostics computes entropy H over the frequency distribution, the effective
// diversity 2^H, the ratio 1 - |n - 2^H| / n and the share of observed targets.
func diagnostics(freq map[string]int, targets, models int, covered bool) *domain.SieveReport {
	r := &domain.SieveReport{
		Targets:   targets,
		Models:    models,
		Frequency: freq,
		Covered:   covered,
	}

	observed := 0
	for _, f := range freq {
		r.Population += f
		if f > 0 {
			observed++
		}
	}
	if r.Population > 0 {
		for _, f := range freq {
			if f == 0 {
				continue
			}
			p := float64(f) / float64(r.Population)
			r.Entropy -= p * math.Log2(p)
		}
	}

	n := float64(targets)
	r.Diversity = math.Exp2(r.Entropy)
	r.Ratio = 1 - math.Abs(n-r.Diversity)/n
	r.Coverage = float64(observed) / n
	return r
}

func writeReport(s *Session, order []string, r *domain.SieveReport) error {
	if _, err := fmt.Fprintln(s.out, "-"); err != nil {
		return err
	}
	for _, t := range order {
		if _, err := fmt.Fprintf(s.out, "%s %.2f\n", t, r.RelativeFrequency(t)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.out, "%v %v\n-\n", r.Coverage, r.Ratio)
	return err
}
