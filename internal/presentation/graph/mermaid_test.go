package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/internal/presentation/graph"
	"github.com/aretw0/pdaboat/pkg/domain"
)

func trace(templateID, input string) domain.Trace {
	return pdaboat.New().Simulate(context.Background(), templateID, input, domain.ModeMicro).Trace
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		trace    domain.Trace
		contains []string
		excludes []string
	}{
		{
			name:  "Accepted Run",
			trace: trace("anbn", "aabb"),
			contains: []string{
				"graph LR\n",
				`q0(("q0"))`,
				`q1["q1"]`,
				`qaccept((("qaccept")))`,
				`q0 -- "a ×2" --> q0`,
				`q0 -- "b" --> q1`,
				`q1 -- "b" --> q1`,
				`q1 -- "end" --> qaccept`,
			},
			excludes: []string{"qreject", ".->"},
		},
		{
			name:  "Underflow Is Dotted",
			trace: trace("anbn", "ba"),
			contains: []string{
				`qreject{{"qreject"}}`,
				`q0 -. "b" .-> qreject`,
			},
		},
		{
			name:     "Empty Word",
			trace:    trace("anbn", ""),
			contains: []string{`q0 -- "end" --> qaccept`},
		},
		{
			name:     "Awkward Symbols",
			trace:    trace("custom", `" `),
			contains: []string{`"#quot;"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.trace, nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
			assert.NotContains(t, got, "classDef")
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	tr := trace("anbn", "aabb")

	got := graph.GenerateMermaid(tr, graph.OverlayAt(tr, 3))
	assert.Contains(t, got, "classDef visited")
	assert.Contains(t, got, "class q0 visited;")
	assert.Contains(t, got, "class q1 visited;")
	assert.Contains(t, got, "class q1 current;")
	assert.NotContains(t, got, "class qaccept")
	assert.Equal(t, 1, strings.Count(got, "class q0 visited;"))

	start := graph.OverlayAt(tr, -4)
	assert.Equal(t, domain.InitialState, start.CurrentState)

	end := graph.OverlayAt(tr, 99)
	assert.Equal(t, domain.StateAccept, end.CurrentState)
}
