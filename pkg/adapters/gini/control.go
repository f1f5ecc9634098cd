package gini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-air/gini/z"

	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// Control is the grounded program together with its base solver.
type Control struct {
	prog   *compiled
	atoms  []domain.Atom
	sorted []int // atom indices in symbol order
	config domain.SolveConfig
	opts   solveOptions
	open   bool
	logger *slog.Logger
}

type solveOptions struct {
	// limit bounds auto enumeration; 0 means all models.
	limit     int
	supported bool
}

var _ ports.Control = (*Control)(nil)

func newControl(prog *compiled, opts solveOptions, project bool, logger *slog.Logger) *Control {
	c := &Control{
		prog:   prog,
		config: domain.SolveConfig{Mode: domain.EnumAuto, Project: project},
		opts:   opts,
		logger: logger,
	}
	for atom := 1; atom <= prog.numAtoms(); atom++ {
		c.atoms = append(c.atoms, domain.Atom{
			Symbol:  prog.symbols[atom],
			Literal: domain.Literal(atom),
			Shown:   prog.shown[atom],
		})
		c.sorted = append(c.sorted, atom)
	}
	sortAtoms(c.sorted, prog.symbols)
	return c
}

// Atoms implements ports.Control.
func (c *Control) Atoms() []domain.Atom {
	out := make([]domain.Atom, len(c.atoms))
	copy(out, c.atoms)
	return out
}

// Configure implements ports.Control.
func (c *Control) Configure(cfg domain.SolveConfig) error {
	switch cfg.Mode {
	case domain.EnumAuto, domain.EnumBrave, domain.EnumCautious:
	default:
		return fmt.Errorf("%w: unknown enumeration mode %q", domain.ErrInvalidInput, cfg.Mode)
	}
	c.config = cfg
	return nil
}

// Config implements ports.Control.
func (c *Control) Config() domain.SolveConfig {
	return c.config
}

// Solve implements ports.Control.
func (c *Control) Solve(ctx context.Context, assumptions []domain.Literal) (ports.SolveHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.open {
		return nil, fmt.Errorf("solve handle already open")
	}

	lits := make([]z.Lit, 0, len(assumptions))
	for _, l := range assumptions {
		atom := int(l.Atom())
		if atom < 1 || atom > c.prog.numAtoms() {
			return nil, fmt.Errorf("%w: literal %d is not part of the program", domain.ErrInvalidInput, l)
		}
		m := c.prog.lit(atom)
		if !l.IsPositive() {
			m = m.Not()
		}
		lits = append(lits, m)
	}

	c.open = true
	c.logger.Debug("solve started", "mode", c.config.Mode, "project", c.config.Project, "assumptions", len(lits))
	return newHandle(c, lits), nil
}

// considered reports whether an atom takes part in blocking and consequence sets.
func (c *Control) considered(atom int) bool {
	return !c.config.Project || c.prog.shown[atom]
}

// learn keeps a loop formula for all later solves.
func (c *Control) learn(clause []z.Lit) {
	c.prog.addClause(clause...)
}
