package gini

import "github.com/go-air/gini/z"

// loopFormulas checks whether the completion model holds an unfounded set and returns
// the clauses excluding it. An empty result means the model is an answer set.
//
// The model is stable iff it equals the least model of its reduct; the atoms outside
// that least model form an unfounded set U. For each a in U the clause
// a -> (some external body of U holds) is valid for every answer set and violated here.
func (c *compiled) loopFormulas(model []bool) [][]z.Lit {
	founded := c.leastModel(model)

	var unfounded []int
	inU := make([]bool, len(model))
	for atom := 1; atom <= c.numAtoms(); atom++ {
		if model[atom] && !founded[atom] {
			unfounded = append(unfounded, atom)
			inU[atom] = true
		}
	}
	if len(unfounded) == 0 {
		return nil
	}

	var external []z.Lit
	seen := make(map[z.Lit]bool)
	for _, atom := range unfounded {
		for _, ri := range c.supports[atom] {
			r := c.rules[ri]
			if r.body == z.LitNull || seen[r.body] {
				continue
			}
			internal := false
			for _, p := range r.pos {
				if inU[p] {
					internal = true
					break
				}
			}
			if !internal {
				seen[r.body] = true
				external = append(external, r.body)
			}
		}
	}

	clauses := make([][]z.Lit, 0, len(unfounded))
	for _, atom := range unfounded {
		clause := make([]z.Lit, 0, len(external)+1)
		clause = append(clause, c.lit(atom).Not())
		clause = append(clause, external...)
		clauses = append(clauses, clause)
	}
	return clauses
}

// leastModel computes the least model of the reduct of the program relative to model,
// restricted to atoms true in model.
func (c *compiled) leastModel(model []bool) []bool {
	founded := make([]bool, len(model))
	missing := make([]int, len(c.rules))
	var queue []int

	applicable := func(r normalRule) bool {
		if r.head == 0 || !model[r.head] {
			return false
		}
		for _, n := range r.neg {
			if model[n] {
				return false
			}
		}
		return true
	}

	for i, r := range c.rules {
		missing[i] = len(r.pos)
		if missing[i] == 0 && applicable(r) && !founded[r.head] {
			founded[r.head] = true
			queue = append(queue, r.head)
		}
	}

	for len(queue) > 0 {
		atom := queue[0]
		queue = queue[1:]
		for _, ri := range c.watches[atom] {
			missing[ri]--
			r := c.rules[ri]
			if missing[ri] == 0 && applicable(r) && !founded[r.head] {
				founded[r.head] = true
				queue = append(queue, r.head)
			}
		}
	}
	return founded
}
