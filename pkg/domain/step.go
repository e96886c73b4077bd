package domain

// Error tags recorded on the terminating failure step of a trace.
const (
	ErrorRejected       = "Rejected"
	ErrorStackUnderflow = "Stack underflow"
)

// Verdict is the final decision of a run.
type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
)

// RunInfo locates a batch-mode step inside its run of identical characters.
type RunInfo struct {
	Position int `json:"position"` // 1-based
	Length   int `json:"length"`
}

// Step is one record of a trace. Steps are created once by the engine and are read-only
// thereafter; StackBefore and StackAfter are independent copies.
type Step struct {
	Index       int      `json:"step"`
	Symbol      string   `json:"symbol"` // EndOfInput marks the final evaluation
	Operation   string   `json:"operation"`
	StackBefore Stack    `json:"stack_before"`
	StackAfter  Stack    `json:"stack_after"`
	State       State    `json:"state"`
	Explanation string   `json:"explanation"`
	Error       string   `json:"error,omitempty"`
	Run         *RunInfo `json:"run,omitempty"`
}

// IsEndOfInput reports whether the step is the synthetic end-of-input evaluation.
func (s Step) IsEndOfInput() bool {
	return s.Symbol == EndOfInput
}

// Failed reports whether the step carries an error tag.
func (s Step) Failed() bool {
	return s.Error != ""
}

// Trace is the ordered sequence of steps of one run. It either ends with an accept/reject
// verdict step or truncates at the first step carrying an error tag.
//
// Traces are random-accessible and safe to re-read; nothing consumes them.
type Trace []Step

// Len returns the number of steps.
func (t Trace) Len() int {
	return len(t)
}

// At returns the step at the 0-based position i.
func (t Trace) At(i int) (Step, bool) {
	if i < 0 || i >= len(t) {
		return Step{}, false
	}
	return t[i], true
}

// Last returns the terminal step.
func (t Trace) Last() (Step, bool) {
	return t.At(len(t) - 1)
}

// Verdict derives the run's decision from the final step's state.
func (t Trace) Verdict() Verdict {
	last, ok := t.Last()
	if ok && last.State == StateAccept {
		return VerdictAccept
	}
	return VerdictReject
}

// Failure returns the error tag of the terminal step, if the run ended early.
func (t Trace) Failure() string {
	last, ok := t.Last()
	if !ok {
		return ""
	}
	return last.Error
}

// Result bundles a trace with the parameters that produced it.
type Result struct {
	TemplateID string  `json:"template_id"`
	Fallback   bool    `json:"fallback,omitempty"` // Requested template was unknown
	Input      string  `json:"input"`
	Mode       Mode    `json:"mode"`
	Trace      Trace   `json:"trace"`
	Verdict    Verdict `json:"verdict"`
}

// Accepted reports whether the run ended in the accept sentinel.
func (r *Result) Accepted() bool {
	return r != nil && r.Verdict == VerdictAccept
}
