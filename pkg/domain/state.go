package domain

// State is a control state of the automaton.
// States are a closed enumeration: they are never introduced dynamically.
type State string

const (
	StateQ0     State = "q0"
	StateQ1     State = "q1"
	StateQ2     State = "q2"
	StateQ3     State = "q3"
	StateAccept State = "qaccept" // Terminal sentinel
	StateReject State = "qreject" // Terminal sentinel
)

// InitialState is the state every simulation starts in.
const InitialState = StateQ0

// Terminal reports whether the state is one of the two sentinels.
func (s State) Terminal() bool {
	return s == StateAccept || s == StateReject
}

// Valid reports whether the state belongs to the closed enumeration.
func (s State) Valid() bool {
	switch s {
	case StateQ0, StateQ1, StateQ2, StateQ3, StateAccept, StateReject:
		return true
	}
	return false
}
