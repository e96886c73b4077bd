package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/pdaboat/pkg/domain"
)

const (
	underflowLabel       = "Error: Pop from empty stack"
	underflowExplanation = "Cannot pop from empty stack"
)

// operation describes the stack edit of an outcome, e.g. "Push A, A", "Pop 1" or
// "Pop 1, Push X".
func operation(out domain.Outcome) string {
	var parts []string
	if out.Pop > 0 {
		parts = append(parts, fmt.Sprintf("Pop %d", out.Pop))
	}
	if len(out.Push) > 0 {
		symbols := make([]string, len(out.Push))
		for i, s := range out.Push {
			symbols[i] = string(s)
		}
		parts = append(parts, "Push "+strings.Join(symbols, ", "))
	}
	if len(parts) == 0 {
		return "No operation"
	}
	return strings.Join(parts, ", ")
}

func stepLabel(symbol string, out domain.Outcome, run *domain.RunInfo) string {
	label := fmt.Sprintf("Read '%s' → %s", symbol, operation(out))
	if run != nil {
		label += fmt.Sprintf(" (run %d/%d)", run.Position, run.Length)
	}
	return label
}

func stepExplanation(symbol string, state domain.State, run *domain.RunInfo) string {
	if run != nil {
		return fmt.Sprintf("Processing symbol '%s' (%d of %d consecutive)", symbol, run.Position, run.Length)
	}
	return fmt.Sprintf("Processed symbol '%s' in state %s", symbol, state)
}

func rejectLabel(symbol string) string {
	return fmt.Sprintf("Reject: Cannot process '%s'", symbol)
}

// rejectExplanation distinguishes a refused pop on an empty stack from a missing transition.
// state is the state the symbol was read in.
func rejectExplanation(symbol string, state domain.State, out domain.Outcome, stack domain.Stack) string {
	if out.Pop > 0 && stack.Empty() {
		return fmt.Sprintf("Cannot pop from empty stack while reading '%s'", symbol)
	}
	return fmt.Sprintf("Invalid transition for '%s' in state %s", symbol, state)
}

func verdictLabel(accepted bool) string {
	if accepted {
		return "Accept"
	}
	return "Reject"
}

func verdictExplanation(accepted bool, stack domain.Stack) string {
	switch {
	case accepted && stack.Empty():
		return "Input accepted! Stack is empty."
	case accepted:
		return "Input accepted! Stack is valid."
	}
	return fmt.Sprintf("Input rejected. Stack has %d items remaining.", stack.Len())
}
