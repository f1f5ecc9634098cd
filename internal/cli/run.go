package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/drwadu/savan"
	"github.com/drwadu/savan/internal/config"
	"github.com/drwadu/savan/internal/presentation/tui"
	"github.com/drwadu/savan/pkg/observability"
)

// Env carries what every command needs.
type Env struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	// Out receives query results.
	Out io.Writer
	// Diag receives the metrics dump and system messages.
	Diag   io.Writer
	Render tui.Renderer
	JSON   bool
}

// RunOptions holds the CLI switches that are not part of savan.yaml.
type RunOptions struct {
	Metrics bool
	JSON    bool
}

// NewEnv prepares the logger, metrics and renderer for cfg.
func NewEnv(cfg *config.Config, opts RunOptions, out, diag io.Writer) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := createLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config: cfg,
		Logger: logger,
		Out:    out,
		Diag:   diag,
		Render: tui.Plain,
		JSON:   opts.JSON,
	}
	if f, ok := out.(*os.File); ok && !opts.JSON {
		env.Render = tui.ForFile(f)
	}
	if opts.Metrics {
		env.Metrics = observability.NewMetrics()
	}
	return env, nil
}

// Open reads the program files and grounds them.
func (e *Env) Open(ctx context.Context) (*savan.Navigator, error) {
	if len(e.Config.Files) == 0 {
		return nil, errors.New("no program files given")
	}
	program, err := config.ReadProgram(e.Config.Files)
	if err != nil {
		return nil, err
	}
	e.Logger.Debug("Program loaded", "files", e.Config.Files, "args", e.Config.Args)
	return createNavigator(ctx, e, program)
}

// Run opens a navigator, applies fn and dumps metrics when enabled.
func Run(ctx context.Context, env *Env, fn func(context.Context, *savan.Navigator) error) error {
	nav, err := env.Open(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx, nav)
	if env.Metrics != nil {
		if err := env.Metrics.WriteText(env.Diag); err != nil {
			env.Logger.Warn("Failed to write metrics", "err", err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("query failed: %w", runErr)
	}
	return nil
}
