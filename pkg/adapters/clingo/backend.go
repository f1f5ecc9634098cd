// Package clingo implements the solving-engine protocol by driving an installed clingo
// executable. Unlike the in-process backend it accepts non-ground programs.
package clingo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/drwadu/savan/internal/lex"
	"github.com/drwadu/savan/internal/logging"
	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// DefaultCommand is the executable looked up on PATH.
const DefaultCommand = "clingo"

// Backend grounds programs with `clingo --text` and solves them in child processes.
type Backend struct {
	command string
	baseDir string
	logger  *slog.Logger
}

// Option configures the Backend.
type Option func(*Backend)

// WithCommand sets the clingo executable (name on PATH or absolute path).
func WithCommand(command string) Option {
	return func(b *Backend) {
		if command != "" {
			b.command = command
		}
	}
}

// WithBaseDir sets the working directory of the clingo processes.
func WithBaseDir(dir string) Option {
	return func(b *Backend) {
		b.baseDir = dir
	}
}

// WithLogger sets the logger used for process diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a clingo backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		command: DefaultCommand,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ ports.Backend = (*Backend)(nil)

// Available reports whether the clingo executable can be found.
func (b *Backend) Available() bool {
	_, err := exec.LookPath(b.command)
	return err == nil
}

// Ground implements ports.Backend. It runs the grounder once to build the atom map;
// solving re-grounds the program in every child process.
func (b *Backend) Ground(ctx context.Context, program string, args []string) (ports.Control, error) {
	path, err := exec.LookPath(b.command)
	if err != nil {
		return nil, fmt.Errorf("clingo executable not found: %w", err)
	}

	// 1. Ground with the constants only; solving options are meaningless for --text
	textArgs := append([]string{"--text"}, constArgs(args)...)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, textArgs...)
	cmd.Dir = b.baseDir
	cmd.Stdin = strings.NewReader(program)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("grounding failed: %v. Stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	// 2. Build the atom map from the ground program
	ground, err := lex.ParseProgram(stdout.String())
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported ground program: %v", domain.ErrInvalidInput, err)
	}
	var atoms []domain.Atom
	for i, sym := range ground.Atoms() {
		atoms = append(atoms, domain.Atom{
			Symbol:  sym,
			Literal: domain.Literal(i + 1),
			Shown:   ground.IsShown(sym),
		})
	}

	solveArgs, project := splitArgs(args)
	b.logger.Debug("program grounded", "command", path, "atoms", len(atoms))
	return &Control{
		path:    path,
		dir:     b.baseDir,
		program: program,
		args:    solveArgs,
		atoms:   atoms,
		config:  domain.SolveConfig{Mode: domain.EnumAuto, Project: project},
		logger:  b.logger,
	}, nil
}

// constArgs keeps the -c/--const definitions, which change the ground program.
func constArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		switch {
		case strings.HasPrefix(args[i], "--const=") || (strings.HasPrefix(args[i], "-c") && len(args[i]) > 2):
			out = append(out, args[i])
		case (args[i] == "-c" || args[i] == "--const") && i+1 < len(args):
			out = append(out, args[i], args[i+1])
			i++
		}
	}
	return out
}

// splitArgs removes the options the control manages itself.
func splitArgs(args []string) ([]string, bool) {
	var out []string
	project := false
	for _, a := range args {
		switch {
		case a == "--project":
			project = true
		case strings.HasPrefix(a, "--enum-mode"), strings.HasPrefix(a, "--outf"), strings.HasPrefix(a, "--verbose"), strings.HasPrefix(a, "-V"):
		default:
			out = append(out, a)
		}
	}
	return out, project
}

// exitError turns a clingo exit status into an error. clingo encodes the search result
// in the status (10 satisfiable, 20 unsatisfiable, 30 exhausted) and uses 65 and above
// for failures.
func exitError(err error, stderr string) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		switch ee.ExitCode() {
		case 10, 20, 30:
			return nil
		}
	}
	return fmt.Errorf("execution failed: %v. Stderr: %s", err, strings.TrimSpace(stderr))
}
