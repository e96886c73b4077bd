/*
Package pdaboat is a pushdown-automaton (PDA) simulator that turns a named ruleset, an input
string and a processing mode into a fully annotated, replayable trace.

It separates simulation from playback: the Simulator runs a template's transition rule over the
whole input up front and returns a Trace, an immutable sequence of steps recording every push,
pop, state change, rejection and the final verdict. Consumers (the terminal runner, the HTTP
and MCP adapters, the playback controller) only ever read that trace.

# Key Features

  - Deterministic: the same template, input and mode always produce the same trace.
  - Total: every (symbol, stack, state) combination has an outcome, so a run never faults.
    Invalid transitions and stack underflows are regular terminal steps.
  - Pluggable templates: a template is a Rule value; adding one never touches the engine.
  - Two granularities: micro mode labels every character, batch mode labels runs of identical
    characters while emitting the same steps.

# Usage

	sim := pdaboat.New()
	res := sim.Simulate(context.Background(), "anbn", "aabb", domain.ModeMicro)
	for _, step := range res.Trace {
		fmt.Println(step.Index, step.Operation, step.StackAfter)
	}
	fmt.Println(res.Verdict) // accept
*/
package pdaboat
