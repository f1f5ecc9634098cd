package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drwadu/savan"
	"github.com/drwadu/savan/internal/cli"
	"github.com/drwadu/savan/internal/presentation/tui"
)

var enumerateCmd = &cobra.Command{
	Use:     "enumerate [program files...]",
	Aliases: []string{"models"},
	Short:   "Print the answer sets under a route",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		quiet, _ := cmd.Flags().GetBool("quiet")
		show, _ := cmd.Flags().GetStringSlice("show")

		opts := savan.EnumerateOptions{Limit: limit, Project: show}
		if quiet {
			opts.Format = savan.FormatQuiet
		}
		return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, route []string) error {
			return cli.PrintEnumerate(ctx, env, nav, route, opts)
		})
	},
}

var sieveCmd = &cobra.Command{
	Use:   "sieve [program files...]",
	Short: "Collect a small set of diverse answer sets covering the target atoms",
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, _ := cmd.Flags().GetStringSlice("targets")
		verbose, _ := cmd.Flags().GetBool("verbose")

		mode := savan.SieveQuiet
		if verbose {
			mode = savan.SieveVerbose
		}
		return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, _ []string) error {
			return cli.PrintSieve(ctx, env, nav, targets, mode)
		})
	},
}

var navigateCmd = &cobra.Command{
	Use:   "navigate [program files...]",
	Short: "Navigate the answer sets interactively",
	Long:  `Starts an interactive session: type atoms to extend the route and 'help' for the other commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd, args)
		if err != nil {
			return err
		}
		if !env.JSON && tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, savan.Version)
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err = cli.Run(sigCtx, env, func(ctx context.Context, nav *savan.Navigator) error {
			return cli.Navigate(ctx, env, nav, os.Stdin)
		})
		if sig := sigCtx.Signal(); sig != nil {
			fmt.Fprintf(os.Stderr, "\n>>> Interrupted (%v).\n", sig)
		}
		return cli.HandleExecutionError(err)
	},
}

func init() {
	addQueryFlags(enumerateCmd)
	enumerateCmd.Flags().IntP("limit", "n", 0, "Stop after that many answer sets (0 for all)")
	enumerateCmd.Flags().BoolP("quiet", "q", false, "Only print the number of answer sets")
	enumerateCmd.Flags().StringSlice("show", nil, "Only print these atoms (by name or full text)")
	rootCmd.AddCommand(enumerateCmd)

	sieveCmd.Flags().StringSliceP("targets", "t", nil, "Atoms to cover")
	sieveCmd.Flags().BoolP("verbose", "v", false, "Print the collected models and diagnostics")
	sieveCmd.Flags().BoolP("watch", "w", false, "Re-run whenever a program file changes")
	_ = sieveCmd.MarkFlagRequired("targets")
	rootCmd.AddCommand(sieveCmd)

	rootCmd.AddCommand(navigateCmd)
}
