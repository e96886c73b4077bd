/*
Package templates holds the fixed catalogue of pushdown-automaton rulesets and the
Registry used to look them up.

Every rule is a pure domain.RuleFunc written as ordered guard clauses over (state, symbol)
that ends in a catch-all reject, which keeps each rule total. When a transition needs to pop
from an empty stack the rule still asks for the pop; the engine then records the failure as a
stack underflow instead of a plain rejection.

Templates are interchangeable plug-ins: adding one means appending to Catalogue, with no
change to the engine.
*/
package templates
