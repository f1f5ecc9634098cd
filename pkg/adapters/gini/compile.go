package gini

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/drwadu/savan/internal/lex"
	"github.com/drwadu/savan/pkg/domain"
)

// normalRule is a rule after shifting disjunctions: a single head atom (0 for constraints),
// positive and negative body atoms, and the solver literal standing for its body.
type normalRule struct {
	head   int
	choice bool
	pos    []int
	neg    []int
	// body is the auxiliary literal equivalent to the body; LitNull for empty bodies.
	body z.Lit
}

// compiled is the propositional translation of a ground program.
type compiled struct {
	symbols []domain.Symbol // index 0 unused; atom i is solver variable i
	shown   []bool
	rules   []normalRule
	// supports lists the rules deriving each atom.
	supports [][]int
	// watches lists the rules having an atom in their positive body.
	watches [][]int
	base    *gini.Gini
	// inconsistent is set when a constraint has an empty body.
	inconsistent bool
	nextVar      int
}

func (c *compiled) numAtoms() int {
	return len(c.symbols) - 1
}

func (c *compiled) lit(atom int) z.Lit {
	return z.Var(atom).Pos()
}

func (c *compiled) newVar() z.Lit {
	c.nextVar++
	return z.Var(c.nextVar).Pos()
}

func (c *compiled) addClause(lits ...z.Lit) {
	for _, m := range lits {
		c.base.Add(m)
	}
	c.base.Add(z.LitNull)
}

// compile translates prog into clauses using Clark's completion. Disjunctive heads
// are shifted into normal rules, which preserves answer sets of head-cycle-free programs;
// other disjunctive programs are rejected.
// Positive loops are handled lazily by the unfounded-set check during search.
func compile(prog *lex.Program) (*compiled, error) {
	c := &compiled{
		symbols: []domain.Symbol{{}},
		shown:   []bool{false},
		base:    gini.New(),
	}

	index := make(map[string]int)
	for _, sym := range prog.Atoms() {
		index[sym.String()] = len(c.symbols)
		c.symbols = append(c.symbols, sym)
		c.shown = append(c.shown, prog.IsShown(sym))
	}
	c.nextVar = c.numAtoms()
	c.supports = make([][]int, len(c.symbols))
	c.watches = make([][]int, len(c.symbols))

	atomOf := func(s domain.Symbol) int { return index[s.String()] }
	if err := checkHeadCycles(prog, atomOf, c.numAtoms()); err != nil {
		return nil, err
	}

	for _, r := range prog.Rules {
		var pos, neg []int
		for _, l := range r.Body {
			if l.Negated {
				neg = append(neg, atomOf(l.Atom))
			} else {
				pos = append(pos, atomOf(l.Atom))
			}
		}

		switch {
		case r.IsConstraint():
			c.rules = append(c.rules, normalRule{pos: pos, neg: neg})
		case r.Choice:
			for _, h := range r.Head {
				c.rules = append(c.rules, normalRule{head: atomOf(h), choice: true, pos: pos, neg: neg})
			}
		default:
			for i, h := range r.Head {
				shifted := append([]int(nil), neg...)
				for j, other := range r.Head {
					if j != i {
						shifted = append(shifted, atomOf(other))
					}
				}
				c.rules = append(c.rules, normalRule{head: atomOf(h), pos: pos, neg: shifted})
			}
		}
	}

	for i := range c.rules {
		r := &c.rules[i]
		r.body = z.LitNull
		if len(r.pos)+len(r.neg) > 0 {
			r.body = c.newVar()
			c.defineBody(r)
		}

		switch {
		case r.head == 0:
			if r.body == z.LitNull {
				c.inconsistent = true
				continue
			}
			c.addClause(r.body.Not())
		case r.choice:
			// a choice head is allowed, never forced
		case r.body == z.LitNull:
			c.addClause(c.lit(r.head))
		default:
			c.addClause(r.body.Not(), c.lit(r.head))
		}

		if r.head != 0 {
			c.supports[r.head] = append(c.supports[r.head], i)
		}
		for _, p := range r.pos {
			c.watches[p] = append(c.watches[p], i)
		}
	}

	// completion: an atom needs at least one rule whose body holds
	for atom := 1; atom <= c.numAtoms(); atom++ {
		clause := []z.Lit{c.lit(atom).Not()}
		unconditional := false
		for _, ri := range c.supports[atom] {
			body := c.rules[ri].body
			if body == z.LitNull {
				unconditional = true
				break
			}
			clause = append(clause, body)
		}
		if !unconditional {
			c.addClause(clause...)
		}
	}

	// classical negation: p and -p never hold together
	for atom := 1; atom <= c.numAtoms(); atom++ {
		sym := c.symbols[atom]
		if !sym.Negative {
			continue
		}
		if pos, ok := index[sym.Neg().String()]; ok {
			c.addClause(c.lit(atom).Not(), c.lit(pos).Not())
		}
	}

	if c.nextVar >= 1<<30 {
		return nil, fmt.Errorf("program too large: %d solver variables", c.nextVar)
	}
	return c, nil
}

// defineBody adds body <-> (pos and not neg).
func (c *compiled) defineBody(r *normalRule) {
	back := []z.Lit{r.body}
	for _, p := range r.pos {
		c.addClause(r.body.Not(), c.lit(p))
		back = append(back, c.lit(p).Not())
	}
	for _, n := range r.neg {
		c.addClause(r.body.Not(), c.lit(n).Not())
		back = append(back, c.lit(n))
	}
	c.addClause(back...)
}
