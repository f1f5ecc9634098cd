// Package gini implements the solving-engine protocol in process, translating ground
// programs to SAT and solving them with github.com/go-air/gini.
package gini

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/drwadu/savan/internal/lex"
	"github.com/drwadu/savan/internal/logging"
	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// Backend grounds programs into gini controls.
type Backend struct {
	logger *slog.Logger
}

// Option configures the Backend.
type Option func(*Backend)

// WithLogger sets the logger used for solver diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a gini backend.
func New(opts ...Option) *Backend {
	b := &Backend{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ ports.Backend = (*Backend)(nil)

// Ground implements ports.Backend. The program must already be ground.
func (b *Backend) Ground(ctx context.Context, program string, args []string) (ports.Control, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts, project, err := b.parseArgs(args)
	if err != nil {
		return nil, err
	}

	prog, err := lex.ParseProgram(program)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	compiled, err := compile(prog)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("program grounded",
		"atoms", compiled.numAtoms(),
		"rules", len(compiled.rules),
		"vars", compiled.nextVar,
		"inconsistent", compiled.inconsistent,
	)
	return newControl(compiled, opts, project, b.logger), nil
}

// parseArgs understands the subset of clingo options meaningful to this backend.
func (b *Backend) parseArgs(args []string) (solveOptions, bool, error) {
	var opts solveOptions
	project := false
	seenLimit := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--supp-models":
			opts.supported = true
		case arg == "--project":
			project = true
		case strings.HasPrefix(arg, "--models="):
			n, err := parseLimit(strings.TrimPrefix(arg, "--models="))
			if err != nil {
				return opts, false, err
			}
			opts.limit = n
		case arg == "-n" && i+1 < len(args):
			n, err := parseLimit(args[i+1])
			if err != nil {
				return opts, false, err
			}
			opts.limit = n
			i++
		case isNumeric(arg) && !seenLimit:
			n, err := parseLimit(arg)
			if err != nil {
				return opts, false, err
			}
			opts.limit = n
			seenLimit = true
		default:
			b.logger.Debug("ignoring solver argument", "arg", arg)
		}
	}
	return opts, project, nil
}

func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid model bound %q", domain.ErrInvalidInput, s)
	}
	return n, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sortAtoms(atoms []int, symbols []domain.Symbol) {
	slices.SortStableFunc(atoms, func(a, b int) int {
		return domain.CompareSymbols(symbols[a], symbols[b])
	})
}
