package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the savan banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ___  __ ___   ____ _ _ __  ", "#34d399"},
		{" / __|/ _` \\ \\ / / _` | '_ \\ ", "#2dd4bf"},
		{" \\__ \\ (_| |\\ V / (_| | | | |", "#22d3ee"},
		{" |___/\\__,_| \\_/ \\__,_|_| |_|", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
