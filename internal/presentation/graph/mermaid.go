package graph

import (
	"fmt"
	"strings"
)

// Step is one way to extend a route, scored by the weight of the extended route.
type Step struct {
	Atom   string
	Weight int
}

// GenerateMermaid produces a Mermaid flowchart of the steps available from route.
// It applies semantic styling:
// - Route: ((Circle))
// - Inclusive step: [Rectangle]
// - Exclusive step (~atom): [/Parallelogram/]
// Steps with weight 0 lead to a route with nothing left to decide and are styled as final.
func GenerateMermaid(route []string, steps []Step) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	label := "ε"
	if len(route) > 0 {
		label = strings.Join(route, " ")
	}
	fmt.Fprintf(&sb, "    route((\"%s\"))\n", escape(label))

	var final []string
	for i, s := range steps {
		id := fmt.Sprintf("s%d_%s", i, sanitizeMermaidID(s.Atom))

		opener, closer := "[", "]"
		if strings.HasPrefix(s.Atom, "~") {
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escape(s.Atom), closer)
		fmt.Fprintf(&sb, "    route -- \"%d\" --> %s\n", s.Weight, id)

		if s.Weight == 0 {
			final = append(final, id)
		}
	}

	if len(final) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef final fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, id := range final {
			fmt.Fprintf(&sb, "    class %s final;\n", id)
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(
		"~", "not_",
		"(", "_",
		")", "",
		",", "_",
		"\"", "",
		" ", "",
		".", "_",
		"-", "_",
	)
	return r.Replace(id)
}
