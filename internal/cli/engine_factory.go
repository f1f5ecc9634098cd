package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/drwadu/savan"
	"github.com/drwadu/savan/internal/config"
	"github.com/drwadu/savan/pkg/adapters/clingo"
	"github.com/drwadu/savan/pkg/adapters/gini"
	"github.com/drwadu/savan/pkg/domain"
	"github.com/drwadu/savan/pkg/ports"
)

// createBackend picks the solving engine named in cfg.
func createBackend(cfg *config.Config, logger *slog.Logger) (ports.Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "gini":
		return gini.New(gini.WithLogger(logger)), nil
	case "clingo":
		b := clingo.New(
			clingo.WithCommand(cfg.Clingo.Command),
			clingo.WithBaseDir(cfg.Clingo.Dir),
			clingo.WithLogger(logger),
		)
		if !b.Available() {
			return nil, fmt.Errorf("clingo executable %q not found", cfg.Clingo.Command)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// createNavigator grounds program with standard CLI conventions.
func createNavigator(ctx context.Context, env *Env, program string) (*savan.Navigator, error) {
	backend, err := createBackend(env.Config, env.Logger)
	if err != nil {
		return nil, err
	}

	hooks := createDebugHooks(env.Logger)
	if env.Metrics != nil {
		hooks = chainHooks(hooks, env.Metrics.Hooks(nil))
	}

	nav, err := savan.New(ctx, program, env.Config.Args,
		savan.WithBackend(backend),
		savan.WithLogger(env.Logger),
		savan.WithLifecycleHooks(hooks),
		savan.WithOutput(env.Out),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing navigator: %w", err)
	}
	return nav, nil
}

// chainHooks calls a before b for every event.
func chainHooks(a, b domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQueryStart: chain(a.OnQueryStart, b.OnQueryStart),
		OnQueryEnd:   chain(a.OnQueryEnd, b.OnQueryEnd),
		OnModel: func(ctx context.Context, kind domain.QueryKind, m *domain.Model) {
			if a.OnModel != nil {
				a.OnModel(ctx, kind, m)
			}
			if b.OnModel != nil {
				b.OnModel(ctx, kind, m)
			}
		},
		OnRebuild: chain(a.OnRebuild, b.OnRebuild),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
