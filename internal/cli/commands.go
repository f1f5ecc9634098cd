package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/drwadu/savan"
	"github.com/drwadu/savan/internal/presentation/graph"
	"github.com/drwadu/savan/internal/presentation/tui"
	"github.com/drwadu/savan/pkg/domain"
)

func symbolStrings(symbols []domain.Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.String()
	}
	return out
}

func (e *Env) writeJSON(v any) error {
	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *Env) writeMarkdown(md string) error {
	text, err := e.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(e.Out, text)
	return err
}

func (e *Env) writeAtoms(title string, atoms []string) error {
	if e.JSON {
		if atoms == nil {
			atoms = []string{}
		}
		return e.writeJSON(map[string]any{title: atoms})
	}
	return e.writeMarkdown(tui.AtomList(title, atoms))
}

// PrintConsequences prints the brave or cautious consequences under route.
func PrintConsequences(ctx context.Context, env *Env, nav *savan.Navigator, mode domain.EnumMode, route []string, project bool) error {
	syms, err := nav.Consequences(ctx, route, mode, project)
	if err != nil {
		return err
	}
	return env.writeAtoms(string(mode), symbolStrings(syms))
}

// PrintFacets prints the facet-inducing atoms under route.
func PrintFacets(ctx context.Context, env *Env, nav *savan.Navigator, route []string, project bool) error {
	syms, err := nav.FacetInducingAtoms(ctx, route, project)
	if err != nil {
		return err
	}
	return env.writeAtoms("facets", symbolStrings(syms))
}

// PrintFacetsSU prints the facet-inducing atoms among targets.
func PrintFacetsSU(ctx context.Context, env *Env, nav *savan.Navigator, targets, route []string) error {
	facets, err := nav.FacetsSU(ctx, targets, route)
	if err != nil {
		return err
	}
	return env.writeAtoms("facets", facets)
}

// PrintEnumerate prints up to limit answer sets under route.
func PrintEnumerate(ctx context.Context, env *Env, nav *savan.Navigator, route []string, opts savan.EnumerateOptions) error {
	if env.JSON {
		opts.Format = savan.FormatJSON
	}
	res, err := nav.Enumerate(ctx, route, opts)
	if err != nil {
		return err
	}
	switch opts.Format {
	case savan.FormatJSON:
		for _, r := range res.Records {
			if err := env.writeJSON(r); err != nil {
				return err
			}
		}
	case savan.FormatQuiet:
		fmt.Fprintf(env.Out, "%d\n", res.Count)
	}
	return nil
}

// PrintSieve runs the sieve over targets.
func PrintSieve(ctx context.Context, env *Env, nav *savan.Navigator, targets []string, mode savan.SieveMode) error {
	if env.JSON {
		mode = savan.SieveStructured
	}
	res, err := nav.Sieve(ctx, targets, mode)
	if err != nil {
		return err
	}
	switch mode {
	case savan.SieveQuiet:
		return env.writeAtoms("observed", res.Observed)
	case savan.SieveStructured:
		return env.writeJSON(map[string]any{
			"observed": res.Observed,
			"report":   res.Report,
			"models":   res.Records,
		})
	}
	return nil
}

// PrintWeight prints the weight of route.
func PrintWeight(ctx context.Context, env *Env, nav *savan.Navigator, w domain.Weight, route []string, project bool) error {
	count := nav.Count
	if project {
		count = nav.CountProjecting
	}
	n, err := count(ctx, w, route)
	if err != nil {
		return err
	}
	if env.JSON {
		return env.writeJSON(map[string]any{"weight": w.String(), "route": route, "value": n})
	}
	_, err = fmt.Fprintf(env.Out, "%s: %d\n", w, n)
	return err
}

// PrintAtoms lists the atoms of the grounded program with their solver literals.
func PrintAtoms(env *Env, nav *savan.Navigator) error {
	lits := map[string]domain.Literal{}
	for atom := range nav.Atoms() {
		lit, _ := nav.Resolve(atom)
		lits[atom] = lit
	}
	if env.JSON {
		return env.writeJSON(lits)
	}
	for atom := range nav.Atoms() {
		fmt.Fprintf(env.Out, "%s %d\n", atom, lits[atom])
	}
	return nil
}

// PrintGraph prints a Mermaid flowchart of the steps available from route.
// Every facet-inducing atom yields an inclusive and an exclusive step.
func PrintGraph(ctx context.Context, env *Env, nav *savan.Navigator, w domain.Weight, route []string) error {
	facets, err := nav.FacetInducingAtoms(ctx, route, false)
	if err != nil {
		return err
	}

	steps := make([]graph.Step, 0, 2*len(facets))
	for _, f := range symbolStrings(facets) {
		for _, atom := range []string{f, "~" + f} {
			n, err := nav.Count(ctx, w, append(slices.Clone(route), atom))
			if err != nil {
				return err
			}
			steps = append(steps, graph.Step{Atom: atom, Weight: n})
		}
	}
	_, err = fmt.Fprint(env.Out, graph.GenerateMermaid(route, steps))
	return err
}
