package domain

import "strings"

// Symbol is a stack symbol. The alphabet is closed: A, X, Y and Z.
type Symbol string

const (
	SymbolA Symbol = "A"
	SymbolX Symbol = "X"
	SymbolY Symbol = "Y"
	SymbolZ Symbol = "Z"
)

// Stack is a LIFO sequence of symbols. The last element is the top.
//
// A Stack is owned by exactly one simulation run. Values handed to observers
// (rules, trace steps) are always independent copies produced by Clone.
type Stack []Symbol

// Len returns the depth of the stack.
func (s Stack) Len() int {
	return len(s)
}

// Empty reports whether the stack holds no symbols.
func (s Stack) Empty() bool {
	return len(s) == 0
}

// Top returns the top symbol without removing it.
func (s Stack) Top() (Symbol, bool) {
	if len(s) == 0 {
		return "", false
	}
	return s[len(s)-1], true
}

// TopIs reports whether the stack is non-empty and its top equals sym.
func (s Stack) TopIs(sym Symbol) bool {
	top, ok := s.Top()
	return ok && top == sym
}

// Count returns how many times sym occurs in the stack.
func (s Stack) Count(sym Symbol) int {
	n := 0
	for _, v := range s {
		if v == sym {
			n++
		}
	}
	return n
}

// Push appends symbols in listed order, so the last listed symbol becomes the new top.
func (s *Stack) Push(symbols ...Symbol) {
	*s = append(*s, symbols...)
}

// Pop removes and returns the top symbol.
// It returns false (underflow) when the stack is empty.
func (s *Stack) Pop() (Symbol, bool) {
	old := *s
	if len(old) == 0 {
		return "", false
	}
	top := old[len(old)-1]
	*s = old[:len(old)-1]
	return top, true
}

// Clone returns an independent copy. A nil or empty stack clones to an empty, non-nil stack
// so that JSON snapshots render as [] rather than null.
func (s Stack) Clone() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// String renders the stack bottom-to-top, e.g. "[A, A, X]".
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = string(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
