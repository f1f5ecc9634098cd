package domain

// Literal is an engine-native handle for a ground atom or its negation.
// Positive values denote the atom, negative values its default negation. Zero is invalid.
type Literal int32

// Negate flips the sign of the literal.
func (l Literal) Negate() Literal {
	return -l
}

// Atom returns the positive literal of the underlying atom.
func (l Literal) Atom() Literal {
	if l < 0 {
		return -l
	}
	return l
}

// IsPositive reports whether the literal asserts its atom.
func (l Literal) IsPositive() bool {
	return l > 0
}

// Atom is one entry of the Herbrand atom map exposed by a grounded program.
type Atom struct {
	Symbol  Symbol
	Literal Literal
	// Shown marks atoms selected by #show statements (all atoms when the program has none).
	Shown bool
}
