/*
Package domain contains the core types shared by the navigator, its solving backends
and its adapters.

It is kept free of I/O and of any particular solver so that both the in-process and
the out-of-process engines speak the same vocabulary.

# Key Entities

  - Symbol: a ground term (atom) such as p(1,2) rendered in solver syntax.
  - Literal: a signed engine handle for an atom of the ground program.
  - Model: one element of a model stream (an answer set or a consequence set).
  - SolveConfig: enumeration mode (auto, brave, cautious) and projection.
  - Weight: the closed set of route scoring functions.
  - SieveReport / SolverOutput: diagnostics and structured per-model records.
*/
package domain
