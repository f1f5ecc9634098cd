package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/drwadu/savan"
	"github.com/drwadu/savan/internal/cli"
	"github.com/drwadu/savan/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "savan",
	Short: "savan navigates the answer sets of logic programs",
	Long: `savan explores the solution space of an answer set program by moving along routes
of assumed atoms, reporting consequences, facets, weights and diverse samples of models.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", config.DefaultFile, "Path to the savan.yaml configuration")
	pf.StringSlice("args", nil, "Arguments passed to the solving engine (e.g. 0,--supp-models)")
	pf.String("backend", "", "Solving engine: gini or clingo")
	pf.String("clingo", "", "Path of the clingo executable")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Bool("metrics", false, "Print Prometheus metrics to stderr when done")
	pf.Bool("json", false, "Print results as JSON")
}

// loadEnv merges savan.yaml, flags and positional program files.
func loadEnv(cmd *cobra.Command, files []string) (*cli.Env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if len(files) > 0 {
		cfg.Files = files
	}
	if flags.Changed("args") {
		cfg.Args, _ = flags.GetStringSlice("args")
	}
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("clingo") {
		cfg.Clingo.Command, _ = flags.GetString("clingo")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	metrics, _ := flags.GetBool("metrics")
	jsonMode, _ := flags.GetBool("json")
	return cli.NewEnv(cfg, cli.RunOptions{Metrics: metrics, JSON: jsonMode}, os.Stdout, os.Stderr)
}

// addQueryFlags registers the flags shared by route queries.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("route", "r", nil, "Route of atoms to assume, ~ negates (e.g. b,~c)")
	cmd.Flags().BoolP("watch", "w", false, "Re-run whenever a program file changes")
}

// runQuery executes fn once, or on every change of the program files with --watch.
func runQuery(cmd *cobra.Command, files []string, fn func(context.Context, *cli.Env, *savan.Navigator, []string) error) error {
	env, err := loadEnv(cmd, files)
	if err != nil {
		return err
	}
	route, _ := cmd.Flags().GetStringSlice("route")
	if !cmd.Flags().Changed("route") {
		route = env.Config.Route
	}

	sigCtx := cli.NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	query := func(ctx context.Context, nav *savan.Navigator) error {
		return fn(ctx, env, nav, route)
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return cli.HandleExecutionError(cli.Watch(sigCtx, env, 500*time.Millisecond, query))
	}
	return cli.HandleExecutionError(cli.Run(sigCtx, env, query))
}
