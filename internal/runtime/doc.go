// Package runtime contains the step generator: the pure function that runs a template's
// transition rule over an input and records every micro-operation as a trace step.
//
// The package holds no state between calls. Hooks, tracing and logging are applied by the
// callers (see the root pdaboat package), never here.
package runtime
