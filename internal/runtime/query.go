package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// checkout takes the control out of its slot.
func (s *Session) checkout() (ports.Control, error) {
	if s.ctl == nil {
		return nil, domain.ErrNoControl
	}
	ctl := s.ctl
	s.ctl = nil
	s.logger.Debug("control checked out")
	return ctl, nil
}

func (s *Session) checkin(ctl ports.Control) {
	s.ctl = ctl
	s.logger.Debug("control checked in")
}

// query runs fn with the checked-out control configured as cfg.
//
// The previous configuration is restored on every exit path. The control is checked
// back in when fn succeeds or stops because ctx is done; an engine failure keeps it out,
// leaving the session without control.
func (s *Session) query(ctx context.Context, kind domain.QueryKind, route []string, cfg domain.SolveConfig, fn func(ports.Control) (int, error)) (err error) {
	ev := &domain.QueryEvent{Timestamp: time.Now(), Kind: kind, Route: route}
	if s.hooks.OnQueryStart != nil {
		s.hooks.OnQueryStart(ctx, ev)
	}
	defer func() {
		ev.Duration = time.Since(ev.Timestamp)
		ev.Err = err
		if err != nil {
			s.logger.Error("query failed", "kind", kind, "error", err)
		} else {
			s.logger.Debug("query finished", "kind", kind, "models", ev.Models, "duration", ev.Duration)
		}
		if s.hooks.OnQueryEnd != nil {
			s.hooks.OnQueryEnd(ctx, ev)
		}
	}()

	// 1. Take the control
	ctl, err := s.checkout()
	if err != nil {
		return err
	}

	// 2. Configure, restoring the previous configuration afterwards
	prior := ctl.Config()
	if err := ctl.Configure(cfg); err != nil {
		return domain.NewEngineError("configure", err)
	}
	defer func() {
		if rerr := ctl.Configure(prior); rerr != nil && err == nil {
			err = domain.NewEngineError("configure", rerr)
		}
		// 4. Hand the control back unless the engine failed
		if err == nil || isCancellation(ctx, err) {
			s.checkin(ctl)
		}
	}()

	// 3. Run
	ev.Models, err = fn(ctl)
	return err
}

// drain starts a model stream under lits and passes each model to visit until the stream
// is exhausted or visit returns false. It returns the number of models visited.
func (s *Session) drain(ctx context.Context, ctl ports.Control, kind domain.QueryKind, lits []domain.Literal, visit func(*domain.Model) bool) (n int, err error) {
	h, err := ctl.Solve(ctx, lits)
	if err != nil {
		return 0, wrapSolve(ctx, err)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = wrapSolve(ctx, cerr)
		}
	}()

	for {
		m, err := h.Next(ctx)
		if err != nil {
			return n, wrapSolve(ctx, err)
		}
		if m == nil {
			return n, nil
		}
		n++
		if s.hooks.OnModel != nil {
			s.hooks.OnModel(ctx, kind, m)
		}
		if !visit(m) {
			return n, nil
		}
	}
}

// searchOne returns the first model under route, or nil when there is none.
func (s *Session) searchOne(ctx context.Context, kind domain.QueryKind, route []string) (*domain.Model, error) {
	var found *domain.Model
	err := s.query(ctx, kind, route, domain.DefaultSolveConfig, func(ctl ports.Control) (int, error) {
		return s.drain(ctx, ctl, kind, s.ResolveRoute(route), func(m *domain.Model) bool {
			found = m
			return false
		})
	})
	return found, err
}

func wrapSolve(ctx context.Context, err error) error {
	if isCancellation(ctx, err) {
		return err
	}
	return domain.NewEngineError("solve", err)
}

func isCancellation(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}
