package domain

import (
	"slices"
	"strings"
)

// EnumMode selects what a model stream yields.
type EnumMode string

const (
	// EnumAuto yields every answer set once.
	EnumAuto EnumMode = "auto"
	// EnumBrave yields growing sets; the last one holds the brave consequences.
	EnumBrave EnumMode = "brave"
	// EnumCautious yields shrinking sets; the last one holds the cautious consequences.
	EnumCautious EnumMode = "cautious"
)

// SolveConfig is the mutable solving configuration of a control.
type SolveConfig struct {
	Mode EnumMode
	// Project restricts enumeration and consequences to shown atoms.
	Project bool
}

// DefaultSolveConfig is the configuration every query must leave behind.
var DefaultSolveConfig = SolveConfig{Mode: EnumAuto}

// Model is a single element of a model stream.
type Model struct {
	Number  int
	Symbols []Symbol
}

// Contains reports whether the model holds the given atom.
func (m *Model) Contains(s Symbol) bool {
	for _, sym := range m.Symbols {
		if sym.Equal(s) {
			return true
		}
	}
	return false
}

// Strings returns the textual atoms of the model in order.
func (m *Model) Strings() []string {
	out := make([]string, len(m.Symbols))
	for i, sym := range m.Symbols {
		out[i] = sym.String()
	}
	return out
}

// Key identifies the model by its complete symbol set, independent of order.
func (m *Model) Key() string {
	atoms := m.Strings()
	slices.Sort(atoms)
	return strings.Join(atoms, " ")
}

// SortSymbols orders symbols deterministically in place.
func SortSymbols(symbols []Symbol) {
	slices.SortFunc(symbols, CompareSymbols)
}
