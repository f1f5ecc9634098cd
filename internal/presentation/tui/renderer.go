package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/drwadu/savan/pkg/domain"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer with automatic light/dark detection.
func NewRenderer() Renderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return Plain
	}
	return r.Render
}

// Plain returns markdown unchanged.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ForFile picks glamour for terminals and Plain otherwise.
func ForFile(f *os.File) Renderer {
	if IsTerminal(f) {
		return NewRenderer()
	}
	return Plain
}

// AtomList renders atoms as a titled bullet list.
func AtomList(title string, atoms []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s (%d)\n\n", title, len(atoms))
	if len(atoms) == 0 {
		b.WriteString("_none_\n")
		return b.String()
	}
	for _, a := range atoms {
		fmt.Fprintf(&b, "- `%s`\n", a)
	}
	return b.String()
}

// Route renders the current route.
func Route(route []string) string {
	if len(route) == 0 {
		return "**route:** _empty_\n"
	}
	quoted := make([]string, len(route))
	for i, r := range route {
		quoted[i] = "`" + r + "`"
	}
	return "**route:** " + strings.Join(quoted, " ") + "\n"
}

// SieveReport renders the diagnostics as a table.
func SieveReport(r *domain.SieveReport) string {
	var b strings.Builder
	b.WriteString("### sieve\n\n| atom | frequency | relative |\n|---|---:|---:|\n")

	atoms := make([]string, 0, len(r.Frequency))
	for a := range r.Frequency {
		atoms = append(atoms, a)
	}
	sort.Strings(atoms)
	for _, a := range atoms {
		fmt.Fprintf(&b, "| `%s` | %d | %.2f |\n", a, r.Frequency[a], r.RelativeFrequency(a))
	}

	fmt.Fprintf(&b, "\n- models: %d\n- entropy: %.4f bits\n- diversity: %.4f\n- ratio: %.4f\n- coverage: %.2f\n",
		r.Models, r.Entropy, r.Diversity, r.Ratio, r.Coverage)
	if !r.Covered {
		b.WriteString("\n> some targets are unreachable\n")
	}
	return b.String()
}
