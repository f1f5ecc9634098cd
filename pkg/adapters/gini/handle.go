package gini

import (
	"context"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/drwadu/savan/pkg/domain"
)

// handle enumerates answer sets on a private copy of the base solver.
// Each call to Next adds the clause excluding what was already reported.
type handle struct {
	ctl         *Control
	g           *gini.Gini
	assumptions []z.Lit
	mode        domain.EnumMode

	started bool
	done    bool
	count   int
	// last is the previous model in auto mode; acc the running union or intersection.
	last []bool
	acc  []bool
}

func newHandle(ctl *Control, assumptions []z.Lit) *handle {
	h := &handle{
		ctl:         ctl,
		g:           ctl.prog.base.Copy(),
		assumptions: assumptions,
		mode:        ctl.config.Mode,
	}
	if ctl.prog.inconsistent {
		h.done = true
	}
	return h
}

// Next implements ports.SolveHandle.
func (h *handle) Next(ctx context.Context) (*domain.Model, error) {
	if h.done {
		return nil, nil
	}
	if h.started && !h.exclude() {
		h.done = true
		return nil, nil
	}
	if h.mode == domain.EnumAuto && h.ctl.opts.limit > 0 && h.count >= h.ctl.opts.limit {
		h.done = true
		return nil, nil
	}

	model, err := h.search(ctx)
	if err != nil {
		return nil, err
	}
	if model == nil {
		h.done = true
		return nil, nil
	}
	h.started = true
	h.count++

	switch h.mode {
	case domain.EnumBrave:
		if h.acc == nil {
			h.acc = make([]bool, len(model))
		}
		for atom := range model {
			h.acc[atom] = h.acc[atom] || model[atom]
		}
		return h.report(h.acc), nil
	case domain.EnumCautious:
		if h.acc == nil {
			h.acc = model
		} else {
			for atom := range model {
				h.acc[atom] = h.acc[atom] && model[atom]
			}
		}
		return h.report(h.acc), nil
	default:
		h.last = model
		return h.report(model), nil
	}
}

// Close implements ports.SolveHandle.
func (h *handle) Close() error {
	h.done = true
	h.ctl.open = false
	return nil
}

// exclude adds the clause ruling out the answers already reported.
// It returns false when no further answer can differ.
func (h *handle) exclude() bool {
	var clause []z.Lit
	for atom := 1; atom <= h.ctl.prog.numAtoms(); atom++ {
		if !h.ctl.considered(atom) {
			continue
		}
		m := h.ctl.prog.lit(atom)
		switch h.mode {
		case domain.EnumBrave:
			// some atom outside the union
			if !h.acc[atom] {
				clause = append(clause, m)
			}
		case domain.EnumCautious:
			// some atom of the intersection false
			if h.acc[atom] {
				clause = append(clause, m.Not())
			}
		default:
			if h.last[atom] {
				clause = append(clause, m.Not())
			} else {
				clause = append(clause, m)
			}
		}
	}
	if len(clause) == 0 {
		return false
	}
	for _, m := range clause {
		h.g.Add(m)
	}
	h.g.Add(z.LitNull)
	return true
}

// search finds the next answer set under the assumptions, learning loop formulas
// for every completion model that is not stable.
func (h *handle) search(ctx context.Context) ([]bool, error) {
	prog := h.ctl.prog
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.g.Assume(h.assumptions...)
		switch h.g.Solve() {
		case -1:
			return nil, nil
		case 1:
		default:
			return nil, fmt.Errorf("solver returned an undetermined result")
		}

		model := make([]bool, prog.numAtoms()+1)
		for atom := 1; atom <= prog.numAtoms(); atom++ {
			model[atom] = h.g.Value(prog.lit(atom))
		}
		if h.ctl.opts.supported {
			return model, nil
		}

		clauses := prog.loopFormulas(model)
		if len(clauses) == 0 {
			return model, nil
		}
		for _, clause := range clauses {
			for _, m := range clause {
				h.g.Add(m)
			}
			h.g.Add(z.LitNull)
			h.ctl.learn(clause)
		}
	}
}

func (h *handle) report(values []bool) *domain.Model {
	m := &domain.Model{Number: h.count}
	for _, atom := range h.ctl.sorted {
		if values[atom] && h.ctl.prog.shown[atom] {
			m.Symbols = append(m.Symbols, h.ctl.prog.symbols[atom])
		}
	}
	return m
}
