package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                 __      __                __ `, "#38bdf8"},
	{`    ____  ____/ /___ _/ /_  ____  ____ _/ /_`, "#0ea5e9"},
	{`   / __ \/ __  / __ '/ __ \/ __ \/ __ '/ __/`, "#0284c7"},
	{`  / /_/ / /_/ / /_/ / /_/ / /_/ / /_/ / /_  `, "#0369a1"},
	{` / .___/\__,_/\__,_/_.___/\____/\__,_/\__/  `, "#075985"},
	{`/_/   `, "#0c4a6e"},
}

// PrintBanner writes the pdaboat banner in a sea-blue gradient, followed by the version.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, p.String("  pushdown automata, one boat at a time  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
