/*
Package domain contains the core domain models of the pdaboat engine.

It defines the vocabulary of the pushdown automaton (stack symbols, states, the stack itself),
the transition contract shared by every template, and the records the engine produces
(Step, Trace, Result). This package is kept pure and free of I/O, following the
Hexagonal Architecture used across the module.

# Key Entities

  - Rule: The transition capability. One per template, a pure function of (symbol, stack, state).
  - Template: A named ruleset with display metadata and example inputs.
  - Step: One annotated micro-operation (push, pop, state change, accept or reject).
  - Trace: The ordered, immutable sequence of Steps produced by one simulation run.
  - Session: The persisted parameters of a playback session (never the trace itself).
*/
package domain
