package clingo

import (
	"strings"

	"github.com/drwadu/savan/internal/lex"
	"github.com/drwadu/savan/pkg/domain"
)

// parseAnswer parses an answer line: ground atoms separated by spaces.
func parseAnswer(line string) ([]domain.Symbol, error) {
	var syms []domain.Symbol
	for _, field := range splitAtoms(line) {
		sym, err := lex.ParseSymbol(field)
		if err != nil {
			return nil, err
		}
		syms = append(syms, sym)
	}
	domain.SortSymbols(syms)
	return syms, nil
}

// splitAtoms splits at spaces outside of parentheses and string literals.
func splitAtoms(line string) []string {
	var (
		out     []string
		cur     strings.Builder
		depth   int
		inQuote bool
		escaped bool
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case inQuote:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inQuote = false
			}
		case r == '"':
			inQuote = true
		case r == '(':
			depth++
		case r == ')':
			depth--
		case (r == ' ' || r == '\t') && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return out
}
