package savan

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"github.com/drwadu/savan/internal/runtime"
	"github.com/drwadu/savan/pkg/adapters/gini"
	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// Version is the navigator release.
const Version = "0.4.0"

// Navigator is the high-level entry point of the library.
// It wraps a runtime session and is not safe for concurrent use.
type Navigator struct {
	session *runtime.Session
	backend ports.Backend
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	out     io.Writer
}

// Option defines a functional option for configuring the Navigator.
type Option func(*Navigator)

// WithBackend selects the solving engine. The in-process gini backend is the default.
func WithBackend(b ports.Backend) Option {
	return func(n *Navigator) {
		n.backend = b
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithOutput sets where text enumeration and verbose sieve output go (default: discarded).
func WithOutput(w io.Writer) Option {
	return func(n *Navigator) {
		n.out = w
	}
}

// Re-exported runtime types.
type (
	EnumerateOptions = runtime.EnumerateOptions
	EnumerateResult  = runtime.EnumerateResult
	Format           = runtime.Format
	SieveMode        = runtime.SieveMode
	SieveResult      = runtime.SieveResult
)

const (
	FormatText  = runtime.FormatText
	FormatQuiet = runtime.FormatQuiet
	FormatJSON  = runtime.FormatJSON

	SieveQuiet      = runtime.SieveQuiet
	SieveVerbose    = runtime.SieveVerbose
	SieveStructured = runtime.SieveStructured
)

// New grounds program under args and returns a navigator positioned at the empty route.
func New(ctx context.Context, program string, args []string, opts ...Option) (*Navigator, error) {
	n := &Navigator{}
	for _, opt := range opts {
		opt(n)
	}

	if n.backend == nil {
		n.backend = gini.New(gini.WithLogger(n.logger))
	}

	session, err := runtime.NewSession(ctx, n.backend, program, args,
		runtime.WithLogger(n.logger),
		runtime.WithLifecycleHooks(n.hooks),
		runtime.WithOutput(n.out),
	)
	if err != nil {
		return nil, err
	}
	n.session = session
	return n, nil
}

// Program returns the current program text.
func (n *Navigator) Program() string { return n.session.Program() }

// Args returns the current solver arguments.
func (n *Navigator) Args() []string { return n.session.Args() }

// AddRule appends a rule and grounds the program again.
func (n *Navigator) AddRule(ctx context.Context, rule string) error {
	return n.session.AddRule(ctx, rule)
}

// RemoveRule removes the first occurrence of a rule and grounds the program again.
func (n *Navigator) RemoveRule(ctx context.Context, rule string) error {
	return n.session.RemoveRule(ctx, rule)
}

// AddArg appends a solver argument and grounds the program again.
func (n *Navigator) AddArg(ctx context.Context, arg string) error {
	return n.session.AddArg(ctx, arg)
}

// RemoveArg removes a solver argument; it fails with domain.ErrInvalidInput if absent.
func (n *Navigator) RemoveArg(ctx context.Context, arg string) error {
	return n.session.RemoveArg(ctx, arg)
}

// Reset restores the initial program and arguments.
func (n *Navigator) Reset(ctx context.Context) error {
	return n.session.Reset(ctx)
}

// IsKnown reports whether atom occurs in the ground program.
func (n *Navigator) IsKnown(atom string) bool { return n.session.IsKnown(atom) }

// Atoms iterates over the atoms of the ground program.
func (n *Navigator) Atoms() iter.Seq[string] { return n.session.Atoms() }

// Symbols iterates over the signatures of the atoms of the ground program.
func (n *Navigator) Symbols() iter.Seq2[string, int] { return n.session.Symbols() }

// Resolve translates an atom expression such as "p(1)" or "~p(1)" into a solver literal.
func (n *Navigator) Resolve(expr string) (domain.Literal, bool) { return n.session.Resolve(expr) }

// BraveConsequences returns the atoms true in some answer set under route.
func (n *Navigator) BraveConsequences(ctx context.Context, route []string) ([]domain.Symbol, error) {
	return n.session.Consequences(ctx, route, domain.EnumBrave)
}

// CautiousConsequences returns the atoms true in every answer set under route.
func (n *Navigator) CautiousConsequences(ctx context.Context, route []string) ([]domain.Symbol, error) {
	return n.session.Consequences(ctx, route, domain.EnumCautious)
}

// Consequences computes brave or cautious consequences, optionally projected onto shown atoms.
func (n *Navigator) Consequences(ctx context.Context, route []string, mode domain.EnumMode, project bool) ([]domain.Symbol, error) {
	if project {
		return n.session.ProjectedConsequences(ctx, route, mode)
	}
	return n.session.Consequences(ctx, route, mode)
}

// CountConsequences returns the number of brave or cautious consequences under route.
func (n *Navigator) CountConsequences(ctx context.Context, route []string, mode domain.EnumMode) (int, error) {
	return n.session.CountConsequences(ctx, route, mode)
}

// FacetInducingAtoms returns the atoms that are brave but not cautious under route.
func (n *Navigator) FacetInducingAtoms(ctx context.Context, route []string, project bool) ([]domain.Symbol, error) {
	if project {
		return n.session.ProjectedFacetInducingAtoms(ctx, route)
	}
	return n.session.FacetInducingAtoms(ctx, route)
}

// FacetsSU returns the facet-inducing atoms among targets, testing one atom at a time.
func (n *Navigator) FacetsSU(ctx context.Context, targets, route []string) ([]string, error) {
	return n.session.FacetsSU(ctx, targets, route)
}

// Enumerate streams answer sets under route.
func (n *Navigator) Enumerate(ctx context.Context, route []string, opts EnumerateOptions) (*EnumerateResult, error) {
	return n.session.Enumerate(ctx, route, opts)
}

// Sieve collects distinct models covering targets, with diversity diagnostics.
func (n *Navigator) Sieve(ctx context.Context, targets []string, mode SieveMode) (*SieveResult, error) {
	return n.session.Sieve(ctx, targets, mode)
}

// Count scores route with weight.
func (n *Navigator) Count(ctx context.Context, weight domain.Weight, route []string) (int, error) {
	return n.session.Count(ctx, weight, route)
}

// CountProjecting scores route with weight, restricted to shown atoms.
func (n *Navigator) CountProjecting(ctx context.Context, weight domain.Weight, route []string) (int, error) {
	return n.session.CountProjecting(ctx, weight, route)
}
