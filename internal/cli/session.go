package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/drwadu/savan"
	"github.com/drwadu/savan/internal/presentation/tui"
	"github.com/drwadu/savan/pkg/domain"
)

const navigateHelp = `commands:
  <atom> | ~<atom>     extend the route
  pop | clear | route  edit or show the route
  facets | brave | cautious
  fsu <atom>...        facet-inducing atoms among the given ones
  models [n]           enumerate n answer sets (0 for all)
  sieve <atom>...      diverse models covering the given atoms
  weight [name]        weight of the route (facets, answer-sets)
  rule <rule> | unrule <rule>
  arg <arg> | unarg <arg>
  reset | atoms | help | quit
`

// navigator is the state of an interactive navigation.
type navigator struct {
	env    *Env
	nav    *savan.Navigator
	route  []string
	weight domain.Weight
}

// Navigate runs the interactive loop, reading commands from in until quit or EOF.
func Navigate(ctx context.Context, env *Env, nav *savan.Navigator, in io.Reader) error {
	w, err := domain.ParseWeight(env.Config.Weight)
	if err != nil {
		return err
	}
	n := &navigator{env: env, nav: nav, weight: w}
	for _, r := range env.Config.Route {
		if err := n.extend(r); err != nil {
			return err
		}
	}
	if err := n.status(ctx); err != nil {
		return err
	}

	lines := bufio.NewScanner(in)
	for {
		fmt.Fprint(env.Out, "> ")
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if cmd == "q" || cmd == "quit" || cmd == "exit" {
			return nil
		}

		if err := n.dispatch(ctx, cmd, rest); err != nil {
			if domain.IsNoControl(err) || domain.IsEngineError(err) {
				return err
			}
			printSystemMessage(env.Out, "%v", err)
		}
	}
}

func (n *navigator) dispatch(ctx context.Context, cmd, rest string) error {
	switch cmd {
	case "help", "?":
		_, err := fmt.Fprint(n.env.Out, navigateHelp)
		return err
	case "route":
		return n.env.writeMarkdown(tui.Route(n.route))
	case "pop":
		if len(n.route) > 0 {
			n.route = n.route[:len(n.route)-1]
		}
		return n.status(ctx)
	case "clear":
		n.route = nil
		return n.status(ctx)
	case "facets":
		return PrintFacets(ctx, n.env, n.nav, n.route, false)
	case "brave":
		return PrintConsequences(ctx, n.env, n.nav, domain.EnumBrave, n.route, false)
	case "cautious":
		return PrintConsequences(ctx, n.env, n.nav, domain.EnumCautious, n.route, false)
	case "fsu":
		return PrintFacetsSU(ctx, n.env, n.nav, strings.Fields(rest), n.route)
	case "models":
		limit := 0
		if rest != "" {
			l, err := strconv.Atoi(rest)
			if err != nil {
				return fmt.Errorf("invalid model count %q", rest)
			}
			limit = l
		}
		return PrintEnumerate(ctx, n.env, n.nav, n.route, savan.EnumerateOptions{Limit: limit})
	case "sieve":
		res, err := n.nav.Sieve(ctx, strings.Fields(rest), savan.SieveStructured)
		if err != nil {
			return err
		}
		for i, m := range res.Models {
			fmt.Fprintf(n.env.Out, "solution %d:\n%s\n", i+1, strings.Join(m.Strings(), " "))
		}
		return n.env.writeMarkdown(tui.SieveReport(res.Report))
	case "weight":
		if rest != "" {
			w, err := domain.ParseWeight(rest)
			if err != nil {
				return err
			}
			n.weight = w
		}
		return PrintWeight(ctx, n.env, n.nav, n.weight, n.route, false)
	case "rule":
		return n.mutate(ctx, n.nav.AddRule, rest)
	case "unrule":
		return n.mutate(ctx, n.nav.RemoveRule, rest)
	case "arg":
		return n.mutate(ctx, n.nav.AddArg, rest)
	case "unarg":
		return n.mutate(ctx, n.nav.RemoveArg, rest)
	case "reset":
		if err := n.nav.Reset(ctx); err != nil {
			return err
		}
		n.route = nil
		return n.status(ctx)
	case "atoms":
		return PrintAtoms(n.env, n.nav)
	}

	// anything else is a route step
	if err := n.extend(cmd); err != nil {
		return err
	}
	return n.status(ctx)
}

func (n *navigator) extend(expr string) error {
	if _, ok := n.nav.Resolve(expr); !ok {
		return fmt.Errorf("unknown atom %q", expr)
	}
	n.route = append(n.route, expr)
	return nil
}

func (n *navigator) mutate(ctx context.Context, op func(context.Context, string) error, text string) error {
	if text == "" {
		return fmt.Errorf("missing argument")
	}
	if err := op(ctx, text); err != nil {
		return err
	}
	// atoms may have vanished with the old program
	kept := n.route[:0]
	for _, r := range n.route {
		if _, ok := n.nav.Resolve(r); ok {
			kept = append(kept, r)
		}
	}
	n.route = kept
	return n.status(ctx)
}

// status prints the route and its weight.
func (n *navigator) status(ctx context.Context) error {
	if err := n.env.writeMarkdown(tui.Route(n.route)); err != nil {
		return err
	}
	return PrintWeight(ctx, n.env, n.nav, n.weight, n.route, false)
}
