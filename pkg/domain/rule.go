package domain

// EndOfInput is the reserved symbol passed to a Rule exactly once, after all real input
// symbols have been consumed. A rule inspecting it decides acceptance from the final stack
// and state only; it must never push or pop.
const EndOfInput = ""

// Outcome is the result of evaluating a rule for one (symbol, stack, state) triple.
//
// Pop is applied before Push. Both may be absent (a no-op transition), but Next is mandatory.
// Accept and Reject are mutually exclusive terminal flags.
type Outcome struct {
	Push   []Symbol `json:"push,omitempty"`
	Pop    int      `json:"pop,omitempty"`
	Next   State    `json:"next"`
	Accept bool     `json:"accept,omitempty"`
	Reject bool     `json:"reject,omitempty"`
}

// Rejected is the catch-all outcome every rule falls back to.
func Rejected() Outcome {
	return Outcome{Next: StateReject, Reject: true}
}

// Decide builds an end-of-input outcome from a boolean acceptance predicate.
func Decide(accepted bool) Outcome {
	if accepted {
		return Outcome{Next: StateAccept, Accept: true}
	}
	return Outcome{Next: StateReject}
}

// Rule is the transition capability shared by every template.
// Implementations must be pure: no hidden state, no side effects, no randomness,
// and total (every triple yields an outcome, ending in a catch-all reject).
type Rule interface {
	Evaluate(symbol string, stack Stack, state State) Outcome
}

// RuleFunc adapts an ordinary function to the Rule interface.
type RuleFunc func(symbol string, stack Stack, state State) Outcome

// Evaluate calls f(symbol, stack, state).
func (f RuleFunc) Evaluate(symbol string, stack Stack, state State) Outcome {
	return f(symbol, stack, state)
}
