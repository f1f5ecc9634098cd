package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// Format selects how enumerated models are reported.
type Format int

const (
	// FormatText prints each model to the session output.
	FormatText Format = iota
	// FormatQuiet only counts models.
	FormatQuiet
	// FormatJSON returns one clingo --outf=2 style record per model.
	FormatJSON
)

// EnumerateOptions controls Enumerate.
type EnumerateOptions struct {
	// Limit stops the stream after that many models; 0 enumerates all of them.
	Limit int
	// Project lists the atoms (by name or full text) to report; empty reports every shown atom.
	Project []string
	Format  Format
}

// EnumerateResult holds the outcome of Enumerate.
type EnumerateResult struct {
	Count   int
	Records []domain.SolverOutput
}

// Enumerate streams the answer sets under route.
func (s *Session) Enumerate(ctx context.Context, route []string, opts EnumerateOptions) (*EnumerateResult, error) {
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: negative model limit %d", domain.ErrInvalidInput, opts.Limit)
	}
	res := &EnumerateResult{}
	keep := allowList(opts.Project)

	var werr error
	err := s.query(ctx, domain.QueryEnumerate, route, domain.DefaultSolveConfig, func(ctl ports.Control) (int, error) {
		return s.drain(ctx, ctl, domain.QueryEnumerate, s.ResolveRoute(route), func(m *domain.Model) bool {
			res.Count++
			atoms := keep(m.Symbols)
			switch opts.Format {
			case FormatText:
				werr = writeSolution(s, res.Count, atoms)
			case FormatJSON:
				res.Records = append(res.Records, domain.NewSolverOutput(atoms))
			}
			return werr == nil && (opts.Limit == 0 || res.Count < opts.Limit)
		})
	})
	if err != nil {
		return nil, err
	}
	if werr != nil {
		return nil, fmt.Errorf("write solution: %w", werr)
	}
	return res, nil
}

func writeSolution(s *Session, n int, atoms []string) error {
	_, err := fmt.Fprintf(s.out, "solution %d:\n%s\n", n, strings.Join(atoms, " "))
	return err
}

// allowList filters symbols to those named in project; an empty list keeps all.
func allowList(project []string) func([]domain.Symbol) []string {
	allowed := make(map[string]bool, len(project))
	for _, p := range project {
		allowed[strings.TrimSpace(p)] = true
	}
	return func(syms []domain.Symbol) []string {
		out := make([]string, 0, len(syms))
		for _, sym := range syms {
			text := sym.String()
			name, _ := sym.Signature()
			if len(allowed) == 0 || allowed[text] || allowed[name] {
				out = append(out, text)
			}
		}
		return out
	}
}
