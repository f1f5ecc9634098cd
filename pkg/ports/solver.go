package ports

import (
	"context"

	"github.com/drwadu/savan/pkg/domain"
)

// Backend grounds programs into solver controls.
// A new Control is created for every (re-)grounding; controls are never patched in place.
type Backend interface {
	// Ground parses and grounds program under the given solver arguments.
	Ground(ctx context.Context, program string, args []string) (Control, error)
}

// Control is the live handle of a grounded program.
// It is not safe for concurrent use: callers own it exclusively while a query runs.
type Control interface {
	// Atoms returns the Herbrand atom map of the ground program.
	Atoms() []domain.Atom

	// Configure replaces the solving configuration used by subsequent Solve calls.
	Configure(cfg domain.SolveConfig) error

	// Config returns the current solving configuration.
	Config() domain.SolveConfig

	// Solve starts a model stream constrained by the assumption literals.
	// At most one SolveHandle may be open at a time.
	Solve(ctx context.Context, assumptions []domain.Literal) (SolveHandle, error)
}

// SolveHandle is a pull-based, resumable model stream.
type SolveHandle interface {
	// Next resumes the search and returns the next model, or nil once the stream is exhausted.
	// A nil model on the first call means the assumptions are unsatisfiable.
	Next(ctx context.Context) (*domain.Model, error)

	// Close stops the search. It must be called exactly once, also after exhaustion.
	Close() error
}
