/*
Package savan is an interactive navigation layer over answer set programming.

Given a ground logic program, a Navigator lets the caller walk a route of partial
commitments (atoms that must or must not hold) and, at each step, ask which atoms are
entailed, which could still vary, and how much a further step would narrow things down.

# Concepts

  - Route: an ordered list of atom expressions; "p(1)" asserts an atom, "~p(1)" rejects it.
    Atoms unknown to the ground program are dropped silently.
  - Brave / cautious consequences: atoms true in some / every answer set under a route.
  - Facet: an atom that is brave but not cautious, i.e. a choice still open.
  - Sieve: a small set of distinct answer sets covering target atoms, with entropy
    based diversity diagnostics.
  - Weight: a scoring function for routes (answer-set counting or facet counting).

# Solving Engines

The navigator orchestrates a solving engine through pkg/ports. The default backend
(pkg/adapters/gini) solves ground programs in process; pkg/adapters/clingo drives an
installed clingo executable and also accepts non-ground programs.

# Usage

	nav, err := savan.New(ctx, "a;b. c;d :- b. e.", nil)
	if err != nil {
		log.Fatal(err)
	}

	facets, err := nav.FacetInducingAtoms(ctx, []string{"b"}, false)
	// facets: c, d

	score, err := nav.Count(ctx, domain.FacetCounting, []string{"b"})
	// score: 4

A query checks the solver control out of the session and returns it when done. If the
engine fails mid-query the control is lost and every later query fails with
domain.ErrNoControl; such a navigator must be discarded.
*/
package savan
