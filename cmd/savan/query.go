package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/drwadu/savan"
	"github.com/drwadu/savan/internal/cli"
	"github.com/drwadu/savan/pkg/domain"
)

func consequencesCmd(mode domain.EnumMode, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(mode) + " [program files...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetBool("project")
			return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, route []string) error {
				return cli.PrintConsequences(ctx, env, nav, mode, route, project)
			})
		},
	}
	addQueryFlags(cmd)
	cmd.Flags().Bool("project", false, "Only consider shown atoms")
	return cmd
}

var facetsCmd = &cobra.Command{
	Use:   "facets [program files...]",
	Short: "List the facet-inducing atoms under a route",
	Long:  `Facet-inducing atoms are true in some but not all answer sets compatible with the route.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetBool("project")
		return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, route []string) error {
			return cli.PrintFacets(ctx, env, nav, route, project)
		})
	},
}

var facetsSUCmd = &cobra.Command{
	Use:   "facets-su [program files...]",
	Short: "Decide which target atoms are facet-inducing, one atom at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, _ := cmd.Flags().GetStringSlice("targets")
		return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, route []string) error {
			return cli.PrintFacetsSU(ctx, env, nav, targets, route)
		})
	},
}

var weightCmd = &cobra.Command{
	Use:   "weight [program files...]",
	Short: "Score a route by answer set or facet counting",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetBool("project")
		name, _ := cmd.Flags().GetString("weight")
		return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, route []string) error {
			if !cmd.Flags().Changed("weight") {
				name = env.Config.Weight
			}
			w, err := domain.ParseWeight(name)
			if err != nil {
				return err
			}
			return cli.PrintWeight(ctx, env, nav, w, route, project)
		})
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph [program files...]",
	Short: "Print a Mermaid flowchart of the next navigation steps",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, route []string) error {
			w, err := domain.ParseWeight(env.Config.Weight)
			if err != nil {
				return err
			}
			return cli.PrintGraph(ctx, env, nav, w, route)
		})
	},
}

var atomsCmd = &cobra.Command{
	Use:   "atoms [program files...]",
	Short: "List the ground atoms and their solver literals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, args, func(ctx context.Context, env *cli.Env, nav *savan.Navigator, _ []string) error {
			return cli.PrintAtoms(env, nav)
		})
	},
}

func init() {
	rootCmd.AddCommand(
		consequencesCmd(domain.EnumBrave, "List the atoms true in some answer set under a route"),
		consequencesCmd(domain.EnumCautious, "List the atoms true in every answer set under a route"),
	)

	addQueryFlags(facetsCmd)
	facetsCmd.Flags().Bool("project", false, "Only consider shown atoms")
	rootCmd.AddCommand(facetsCmd)

	addQueryFlags(facetsSUCmd)
	facetsSUCmd.Flags().StringSliceP("targets", "t", nil, "Atoms to test")
	_ = facetsSUCmd.MarkFlagRequired("targets")
	rootCmd.AddCommand(facetsSUCmd)

	addQueryFlags(weightCmd)
	weightCmd.Flags().String("weight", "facets", "Weight: facets or answer-sets")
	weightCmd.Flags().Bool("project", false, "Only consider shown atoms")
	rootCmd.AddCommand(weightCmd)

	addQueryFlags(graphCmd)
	rootCmd.AddCommand(graphCmd)

	addQueryFlags(atomsCmd)
	rootCmd.AddCommand(atomsCmd)
}
