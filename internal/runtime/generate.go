package runtime

import (
	"github.com/aretw0/pdaboat/pkg/domain"
)

// unit is one character of input together with its position in the enclosing run.
// In micro mode every unit has a nil run.
type unit struct {
	symbol string
	run    *domain.RunInfo
}

// partition splits input into processing units. Batch mode groups maximal runs of identical
// characters for labelling, but still yields one unit per character.
func partition(input string, mode domain.Mode) []unit {
	runes := []rune(input)
	units := make([]unit, 0, len(runes))
	if mode != domain.ModeBatch {
		for _, r := range runes {
			units = append(units, unit{symbol: string(r)})
		}
		return units
	}

	for i := 0; i < len(runes); {
		length := 1
		for i+length < len(runes) && runes[i+length] == runes[i] {
			length++
		}
		for j := 0; j < length; j++ {
			units = append(units, unit{
				symbol: string(runes[i]),
				run:    &domain.RunInfo{Position: j + 1, Length: length},
			})
		}
		i += length
	}
	return units
}

// Generate simulates input against the template's rule and returns the complete trace.
//
// It owns a private working stack for the duration of the call, performs no I/O and never
// fails: invalid transitions and underflows are recorded as the terminal step of the trace.
// Calling Generate twice with the same arguments yields identical traces.
func Generate(input string, tpl domain.Template, mode domain.Mode) domain.Trace {
	units := partition(input, mode)
	trace := make(domain.Trace, 0, len(units)+1)

	stack := domain.Stack{}
	state := domain.InitialState

	for _, u := range units {
		before := stack.Clone()
		out := tpl.Rule.Evaluate(u.symbol, stack.Clone(), state)

		if out.Reject {
			trace = append(trace, domain.Step{
				Index:       len(trace) + 1,
				Symbol:      u.symbol,
				Operation:   rejectLabel(u.symbol),
				StackBefore: before,
				StackAfter:  stack.Clone(),
				State:       domain.StateReject,
				Explanation: rejectExplanation(u.symbol, state, out, stack),
				Error:       domain.ErrorRejected,
				Run:         u.run,
			})
			return trace
		}

		// Each removal is checked on its own so a partial pop is visible in the failing step.
		for p := 0; p < out.Pop; p++ {
			if _, ok := stack.Pop(); !ok {
				trace = append(trace, domain.Step{
					Index:       len(trace) + 1,
					Symbol:      u.symbol,
					Operation:   underflowLabel,
					StackBefore: before,
					StackAfter:  stack.Clone(),
					State:       domain.StateReject,
					Explanation: underflowExplanation,
					Error:       domain.ErrorStackUnderflow,
					Run:         u.run,
				})
				return trace
			}
		}
		stack.Push(out.Push...)
		state = out.Next

		trace = append(trace, domain.Step{
			Index:       len(trace) + 1,
			Symbol:      u.symbol,
			Operation:   stepLabel(u.symbol, out, u.run),
			StackBefore: before,
			StackAfter:  stack.Clone(),
			State:       state,
			Explanation: stepExplanation(u.symbol, state, u.run),
			Run:         u.run,
		})
	}

	return append(trace, evaluate(tpl.Rule, stack, state, len(trace)+1))
}

// evaluate performs the single end-of-input check. It is the only place a run is accepted.
func evaluate(rule domain.Rule, stack domain.Stack, state domain.State, index int) domain.Step {
	out := rule.Evaluate(domain.EndOfInput, stack.Clone(), state)
	accepted := out.Accept || out.Next == domain.StateAccept

	final := domain.StateReject
	if accepted {
		final = domain.StateAccept
	}
	return domain.Step{
		Index:       index,
		Symbol:      domain.EndOfInput,
		Operation:   verdictLabel(accepted),
		StackBefore: stack.Clone(),
		StackAfter:  stack.Clone(),
		State:       final,
		Explanation: verdictExplanation(accepted, stack),
	}
}
