/*
Package ports defines the driven ports (interfaces) of the navigator.

These interfaces decouple the navigation algorithms from a concrete answer set
solver, allowing the same session to run on the in-process SAT-based backend or
on an external clingo executable.

# Key Interfaces

  - Backend: grounds a program text under solver arguments into a Control.
  - Control: exposes the atom map, the enumeration configuration and starts solves.
  - SolveHandle: a resumable stream of models that the caller pulls one at a time.
*/
package ports
