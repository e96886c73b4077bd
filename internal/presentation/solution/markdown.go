// Package solution renders a simulation result as a Markdown walkthrough.
package solution

import (
	"fmt"
	"strings"

	"github.com/aretw0/pdaboat/pkg/domain"
)

// Markdown renders the full trace of res as a table, headed by the template description.
func Markdown(res *domain.Result, tpl domain.TemplateInfo) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", cell(tpl.Name))
	if tpl.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", tpl.Description)
	}

	input := res.Input
	if input == "" {
		input = "ε"
	}
	verdict := "✅ accepted"
	if !res.Accepted() {
		verdict = "❌ rejected"
		if failure := res.Trace.Failure(); failure != "" {
			verdict += " (" + strings.ToLower(failure) + ")"
		}
	}
	fmt.Fprintf(&sb, "- **Template:** `%s`\n", res.TemplateID)
	fmt.Fprintf(&sb, "- **Input:** %s\n", cell(input))
	fmt.Fprintf(&sb, "- **Mode:** %s\n", res.Mode)
	fmt.Fprintf(&sb, "- **Verdict:** %s\n\n", verdict)

	sb.WriteString("| Step | Symbol | Operation | Stack before | Stack after | State | Explanation |\n")
	sb.WriteString("|---:|:---:|---|---|---|---|---|\n")
	for _, step := range res.Trace {
		symbol := step.Symbol
		if step.IsEndOfInput() {
			symbol = "⊣"
		}
		state := string(step.State)
		if step.Failed() {
			state = "**" + state + "**"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s | %s |\n",
			step.Index,
			cell(symbol),
			cell(step.Operation),
			step.StackBefore,
			step.StackAfter,
			state,
			cell(step.Explanation),
		)
	}
	return sb.String()
}

// cell escapes characters that would break a table row or start Markdown formatting.
func cell(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"|", `\|`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"#", `\#`,
	)
	return r.Replace(s)
}
