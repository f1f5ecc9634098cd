package runtime

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/drwadu/savan/internal/lex"
	"github.com/drwadu/savan/internal/logging"
	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// NegationMarker prefixes route entries that must not hold.
const NegationMarker = "~"

// Session owns a ground program, its solver arguments and the exclusive solver control.
//
// The control lives in a single slot. Every query takes it out, and hands it back only
// when the query completes; a query aborted by the engine leaves the slot empty and the
// session unusable (ErrNoControl). Program mutations never patch the control: they ground
// the modified program from scratch and swap the result in.
type Session struct {
	backend ports.Backend

	source string
	args   []string

	initialSource string
	initialArgs   []string

	ctl     ports.Control
	atoms   map[string]domain.Atom
	ordered []domain.Atom

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	out    io.Writer
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the structured logger of the session.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) SessionOption {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithOutput sets the writer used by printing queries (text enumeration, verbose sieve).
func WithOutput(w io.Writer) SessionOption {
	return func(s *Session) {
		if w != nil {
			s.out = w
		}
	}
}

// NewSession grounds source under args and builds the atom map.
func NewSession(ctx context.Context, backend ports.Backend, source string, args []string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		backend:       backend,
		initialSource: source,
		initialArgs:   slices.Clone(args),
		logger:        logging.NewNop(),
		out:           io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.rebuild(ctx, "construct", source, args); err != nil {
		return nil, err
	}
	return s, nil
}

// Program returns the current program text.
func (s *Session) Program() string {
	return s.source
}

// Args returns a copy of the current solver arguments.
func (s *Session) Args() []string {
	return slices.Clone(s.args)
}

// Faulted reports whether the session lost its control.
func (s *Session) Faulted() bool {
	return s.ctl == nil
}

// AddRule appends rule to the program and grounds it again.
func (s *Session) AddRule(ctx context.Context, rule string) error {
	return s.rebuild(ctx, "add_rule", s.source+"\n"+rule, s.args)
}

// RemoveRule removes the first occurrence of rule from the program and grounds it again.
// A newline directly in front of the occurrence goes with it, so that removing an added
// rule restores the original text. Removing text that is not part of the program is a no-op.
func (s *Session) RemoveRule(ctx context.Context, rule string) error {
	i := strings.Index(s.source, rule)
	if rule == "" || i < 0 {
		s.logger.Debug("rule not in program", "rule", rule)
		return nil
	}
	start := i
	if start > 0 && s.source[start-1] == '\n' {
		start--
	}
	return s.rebuild(ctx, "remove_rule", s.source[:start]+s.source[i+len(rule):], s.args)
}

// withRule runs fn with rule temporarily appended to the program. Afterwards the saved
// program text is grounded again, so rules the user added with the same text stay put.
func (s *Session) withRule(ctx context.Context, rule string, fn func() error) (err error) {
	saved := s.source
	if err := s.AddRule(ctx, rule); err != nil {
		return err
	}
	defer func() {
		if s.source == saved {
			return
		}
		// restore even when the query was cancelled
		if rerr := s.rebuild(context.WithoutCancel(ctx), "remove_rule", saved, s.args); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}

// AddArg appends a solver argument and grounds the program again.
func (s *Session) AddArg(ctx context.Context, arg string) error {
	return s.rebuild(ctx, "add_arg", s.source, append(slices.Clone(s.args), arg))
}

// RemoveArg removes the first occurrence of a solver argument and grounds the program again.
func (s *Session) RemoveArg(ctx context.Context, arg string) error {
	i := slices.Index(s.args, arg)
	if i < 0 {
		return fmt.Errorf("%w: argument %q is not present", domain.ErrInvalidInput, arg)
	}
	return s.rebuild(ctx, "remove_arg", s.source, slices.Delete(slices.Clone(s.args), i, i+1))
}

// Reset restores the program and arguments the session was created with.
func (s *Session) Reset(ctx context.Context) error {
	return s.rebuild(ctx, "reset", s.initialSource, s.initialArgs)
}

// rebuild grounds a new control and swaps it in. On failure the current state is kept.
func (s *Session) rebuild(ctx context.Context, reason, source string, args []string) error {
	if reason != "construct" && s.ctl == nil {
		return domain.ErrNoControl
	}
	start := time.Now()

	ctl, err := s.backend.Ground(ctx, source, args)
	if err != nil {
		return domain.NewEngineError("ground", err)
	}

	atoms := ctl.Atoms()
	index := make(map[string]domain.Atom, len(atoms))
	for _, a := range atoms {
		index[a.Symbol.String()] = a
	}

	s.ctl = ctl
	s.source = source
	s.args = slices.Clone(args)
	s.atoms = index
	s.ordered = atoms

	ev := &domain.RebuildEvent{
		Timestamp: time.Now(),
		Reason:    reason,
		Atoms:     len(atoms),
		Duration:  time.Since(start),
	}
	s.logger.Debug("session grounded", "reason", reason, "atoms", ev.Atoms, "duration", ev.Duration)
	if s.hooks.OnRebuild != nil {
		s.hooks.OnRebuild(ctx, ev)
	}
	return nil
}

// IsKnown reports whether atom is part of the current ground program.
// Unparsable text is unknown.
func (s *Session) IsKnown(atom string) bool {
	_, ok := s.lookup(atom)
	return ok
}

func (s *Session) lookup(atom string) (domain.Atom, bool) {
	sym, err := lex.ParseAtom(atom)
	if err != nil {
		return domain.Atom{}, false
	}
	a, ok := s.atoms[sym.String()]
	return a, ok
}

// Atoms iterates over the textual atoms of the ground program.
func (s *Session) Atoms() iter.Seq[string] {
	atoms := s.ordered
	return func(yield func(string) bool) {
		for _, a := range atoms {
			if !yield(a.Symbol.String()) {
				return
			}
		}
	}
}

// Symbols iterates over the (name, arity) signature of every atom.
func (s *Session) Symbols() iter.Seq2[string, int] {
	atoms := s.ordered
	return func(yield func(string, int) bool) {
		for _, a := range atoms {
			name, arity := a.Symbol.Signature()
			if !yield(name, arity) {
				return
			}
		}
	}
}

// Resolve translates an atom expression, optionally prefixed by NegationMarker,
// into a solver literal.
func (s *Session) Resolve(expr string) (domain.Literal, bool) {
	expr = strings.TrimSpace(expr)
	negated := strings.HasPrefix(expr, NegationMarker)
	if negated {
		expr = strings.TrimPrefix(expr, NegationMarker)
	}
	a, ok := s.lookup(expr)
	if !ok {
		return 0, false
	}
	if negated {
		return a.Literal.Negate(), true
	}
	return a.Literal, true
}

// ResolveRoute resolves every entry of route, dropping unknown atoms.
func (s *Session) ResolveRoute(route []string) []domain.Literal {
	lits := make([]domain.Literal, 0, len(route))
	for _, expr := range route {
		if l, ok := s.Resolve(expr); ok {
			lits = append(lits, l)
			continue
		}
		s.logger.Debug("dropping unknown route entry", "entry", expr)
	}
	return lits
}
