package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pdaboat/pkg/domain"
)

// GraphOverlay contains playback state to highlight on the graph.
type GraphOverlay struct {
	VisitedStates []domain.State
	CurrentState  domain.State
}

// OverlayAt builds the overlay of a trace after cursor applied steps.
func OverlayAt(trace domain.Trace, cursor int) *GraphOverlay {
	cursor = min(max(cursor, 0), trace.Len())
	overlay := &GraphOverlay{
		VisitedStates: []domain.State{domain.InitialState},
		CurrentState:  domain.InitialState,
	}
	for _, step := range trace[:cursor] {
		overlay.VisitedStates = append(overlay.VisitedStates, step.State)
		overlay.CurrentState = step.State
	}
	return overlay
}

type edge struct {
	from, to domain.State
	symbol   string
	failed   bool
}

// GenerateMermaid produces a Mermaid flowchart of the states a trace walks through.
// Edges are labelled with the symbol read and collapsed when repeated (e.g. "a ×3").
// Shapes: the initial state is a circle, qaccept a double circle, qreject a hexagon.
// Failure edges are dotted.
func GenerateMermaid(trace domain.Trace, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	states := []domain.State{domain.InitialState}
	seen := map[domain.State]bool{domain.InitialState: true}

	var edges []edge
	counts := make(map[edge]int)

	from := domain.InitialState
	for _, step := range trace {
		if !seen[step.State] {
			seen[step.State] = true
			states = append(states, step.State)
		}
		e := edge{from: from, to: step.State, symbol: step.Symbol, failed: step.Failed()}
		if counts[e] == 0 {
			edges = append(edges, e)
		}
		counts[e]++
		from = step.State
	}

	for _, s := range states {
		opener, closer := "[", "]"
		switch s {
		case domain.InitialState:
			opener, closer = "((", "))"
		case domain.StateAccept:
			opener, closer = "(((", ")))"
		case domain.StateReject:
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", s, opener, s, closer)
	}

	for _, e := range edges {
		label := symbolLabel(e.symbol)
		if n := counts[e]; n > 1 {
			label = fmt.Sprintf("%s ×%d", label, n)
		}
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if e.failed {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", e.from, arrow, e.to)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills under both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[domain.State]bool)
		for _, s := range overlay.VisitedStates {
			if !visited[s] && seen[s] {
				visited[s] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", s)
			}
		}
		if overlay.CurrentState != "" && seen[overlay.CurrentState] {
			fmt.Fprintf(&sb, "    class %s current;\n", overlay.CurrentState)
		}
	}

	return sb.String()
}

// symbolLabel makes an input symbol safe inside a quoted Mermaid label.
func symbolLabel(symbol string) string {
	switch symbol {
	case domain.EndOfInput:
		return "end"
	case `"`:
		return "#quot;"
	case " ":
		return "space"
	}
	return symbol
}
