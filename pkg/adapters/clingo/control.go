package clingo

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// Control holds a program and its atom map; every Solve starts a new clingo process.
type Control struct {
	path    string
	dir     string
	program string
	args    []string
	atoms   []domain.Atom
	config  domain.SolveConfig
	open    bool
	logger  *slog.Logger
}

var _ ports.Control = (*Control)(nil)

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

// Solve implements ports.Control. The assumptions are appended to the program as
// integrity constraints.
func (c *Control) Solve(ctx context.Context, assumptions []domain.Literal) (ports.SolveHandle, error) {
	if c.open {
		return nil, fmt.Errorf("solve handle already open")
	}
	constraints, err := c.routeConstraints(assumptions)
	if err != nil {
		return nil, err
	}

	args := append([]string{}, c.args...)
	args = append(args, "--enum-mode="+string(c.config.Mode), "--outf=0", "-V1")
	if c.config.Project {
		args = append(args, "--project")
	}

	pctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(pctx, c.path, args...)
	cmd.Dir = c.dir
	cmd.Stdin = strings.NewReader(c.program + "\n" + constraints)
	h := &handle{ctl: c, cmd: cmd, cancel: cancel}
	cmd.Stderr = &h.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start clingo: %w", err)
	}
	h.lines = bufio.NewScanner(stdout)
	h.lines.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	c.open = true
	c.logger.Debug("clingo started", "args", args, "pid", cmd.Process.Pid)
	return h, nil
}

func (c *Control) routeConstraints(assumptions []domain.Literal) (string, error) {
	var b strings.Builder
	for _, l := range assumptions {
		i := int(l.Atom()) - 1
		if i < 0 || i >= len(c.atoms) {
			return "", fmt.Errorf("%w: literal %d is not part of the program", domain.ErrInvalidInput, l)
		}
		atom := c.atoms[i].Symbol.String()
		if l.IsPositive() {
			fmt.Fprintf(&b, ":- not %s.\n", atom)
		} else {
			fmt.Fprintf(&b, ":- %s.\n", atom)
		}
	}
	return b.String(), nil
}

// handle reads `Answer:` blocks from the standard output of one clingo process.
type handle struct {
	ctl    *Control
	cmd    *exec.Cmd
	cancel context.CancelFunc
	lines  *bufio.Scanner
	stderr bytes.Buffer
	count  int
	done   bool
	closed bool
}

// Next implements ports.SolveHandle.
func (h *handle) Next(ctx context.Context) (*domain.Model, error) {
	if h.done {
		return nil, nil
	}
	for h.lines.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.HasPrefix(h.lines.Text(), "Answer:") {
			continue
		}
		if !h.lines.Scan() {
			break
		}
		syms, err := parseAnswer(h.lines.Text())
		if err != nil {
			return nil, err
		}
		h.count++
		return &domain.Model{Number: h.count, Symbols: syms}, nil
	}

	h.done = true
	if err := h.lines.Err(); err != nil {
		return nil, err
	}
	err := h.cmd.Wait()
	h.closed = true
	if err != nil {
		return nil, exitError(err, h.stderr.String())
	}
	return nil, nil
}

// Close implements ports.SolveHandle. A running process is killed.
func (h *handle) Close() error {
	h.done = true
	h.ctl.open = false
	if !h.closed {
		h.closed = true
		h.cancel()
		_ = h.cmd.Wait()
		return nil
	}
	h.cancel()
	return nil
}
