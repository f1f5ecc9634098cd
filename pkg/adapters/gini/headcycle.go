package gini

import (
	"fmt"

	"github.com/drwadu/savan/internal/lex"
	"github.com/drwadu/savan/pkg/domain"
)

// checkHeadCycles rejects disjunctive rules with two head atoms in the same strongly
// connected component of the positive dependency graph. Shifting such rules loses
// answer sets, so those programs need the clingo backend.
func checkHeadCycles(prog *lex.Program, atomOf func(domain.Symbol) int, n int) error {
	edges := make([][]int, n+1)
	for _, r := range prog.Rules {
		if r.Choice {
			continue
		}
		for _, h := range r.Head {
			for _, l := range r.Body {
				if !l.Negated {
					edges[atomOf(h)] = append(edges[atomOf(h)], atomOf(l.Atom))
				}
			}
		}
	}

	comp := components(edges)
	for _, r := range prog.Rules {
		if r.Choice || len(r.Head) < 2 {
			continue
		}
		seen := make(map[int]domain.Symbol, len(r.Head))
		for _, h := range r.Head {
			c := comp[atomOf(h)]
			if other, ok := seen[c]; ok && !other.Equal(h) {
				return fmt.Errorf("%w: disjunction over %s and %s is not head-cycle-free; use the clingo backend",
					domain.ErrInvalidInput, other, h)
			}
			seen[c] = h
		}
	}
	return nil
}

// components labels every vertex with its strongly connected component (Tarjan).
func components(edges [][]int) []int {
	n := len(edges)
	index := make([]int, n)
	low := make([]int, n)
	comp := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var stack []int
	next, label := 0, 0
	var visit func(v int)
	visit = func(v int) {
		index[v], low[v] = next, next
		next++
		stack = append(stack, v)
		onStack[v] = true
		for _, w := range edges[v] {
			switch {
			case index[w] < 0:
				visit(w)
				low[v] = min(low[v], low[w])
			case onStack[w]:
				low[v] = min(low[v], index[w])
			}
		}
		if low[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp[w] = label
				if w == v {
					break
				}
			}
			label++
		}
	}
	for v := range edges {
		if index[v] < 0 {
			visit(v)
		}
	}
	return comp
}
