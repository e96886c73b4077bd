package solution_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/internal/presentation/solution"
	"github.com/aretw0/pdaboat/pkg/domain"
)

func render(t *testing.T, templateID, input string) string {
	t.Helper()
	sim := pdaboat.New()
	res := sim.Simulate(context.Background(), templateID, input, domain.ModeMicro)
	tpl, ok := sim.Template(res.TemplateID)
	assert.True(t, ok)
	return solution.Markdown(res, tpl.Info())
}

func TestMarkdown_Accepted(t *testing.T) {
	md := render(t, "anbn", "ab")

	assert.True(t, strings.HasPrefix(md, "# aⁿ bⁿ\n"))
	assert.Contains(t, md, "- **Template:** `anbn`")
	assert.Contains(t, md, "- **Verdict:** ✅ accepted")
	assert.Contains(t, md, "| 1 | a | Read 'a' → Push A | [] | [A] | q0 | Processed symbol 'a' in state q0 |")
	assert.Contains(t, md, "| 3 | ⊣ | Accept | [] | [] | qaccept | Input accepted! Stack is empty. |")
	assert.Equal(t, 3+2, strings.Count(md, "\n|"), "header, separator and one row per step")
}

func TestMarkdown_Failure(t *testing.T) {
	md := render(t, "an_hash_bn", "a|")

	assert.Contains(t, md, "\\#")
	assert.Contains(t, md, "❌ rejected (rejected)")
	assert.Contains(t, md, `| 2 | \| | Reject: Cannot process '\|'`)
	assert.Contains(t, md, "**qreject**")
}

func TestMarkdown_EmptyInput(t *testing.T) {
	md := render(t, "anbn", "")
	assert.Contains(t, md, "- **Input:** ε")
}
