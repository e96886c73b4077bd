package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/templates"
)

var (
	allStates  = []domain.State{domain.StateQ0, domain.StateQ1, domain.StateQ2, domain.StateQ3}
	allSymbols = []string{"a", "b", "c", "d", "x", "y", "#", "(", ")", "z", "ä", domain.EndOfInput}
	allStacks  = []domain.Stack{{}, {domain.SymbolA}, {domain.SymbolX}, {domain.SymbolA, domain.SymbolX}}
)

// Every (symbol, state, stack) combination yields a well-formed outcome.
func TestCatalogue_Totality(t *testing.T) {
	for _, tpl := range templates.Catalogue() {
		for _, state := range allStates {
			for _, symbol := range allSymbols {
				for _, stack := range allStacks {
					out := tpl.Rule.Evaluate(symbol, stack.Clone(), state)

					assert.True(t, out.Next.Valid(), "%s %q %s %s", tpl.ID, symbol, state, stack)
					assert.False(t, out.Accept && out.Reject, "%s %q %s", tpl.ID, symbol, state)
					assert.GreaterOrEqual(t, out.Pop, 0)
					if out.Reject {
						assert.Equal(t, domain.StateReject, out.Next, "%s %q %s", tpl.ID, symbol, state)
					}
					if symbol == domain.EndOfInput {
						assert.Zero(t, out.Pop, "%s end of input must not pop", tpl.ID)
						assert.Empty(t, out.Push, "%s end of input must not push", tpl.ID)
					}
				}
			}
		}
	}
}

func TestCatalogue_Pure(t *testing.T) {
	for _, tpl := range templates.Catalogue() {
		stack := domain.Stack{domain.SymbolA}
		first := tpl.Rule.Evaluate("b", stack, domain.StateQ1)
		second := tpl.Rule.Evaluate("b", stack, domain.StateQ1)
		assert.Equal(t, first, second, tpl.ID)
		assert.Equal(t, domain.Stack{domain.SymbolA}, stack, tpl.ID)
	}
}

func TestCatalogue_UnknownSymbolRejects(t *testing.T) {
	for _, tpl := range templates.Catalogue() {
		assert.Equal(t, domain.Rejected(), tpl.Rule.Evaluate("z", domain.Stack{}, domain.StateQ0), tpl.ID)
	}
}

func TestCatalogue_Rules(t *testing.T) {
	get := func(id string) domain.Rule {
		tpl, _ := templates.MustDefault().Get(id)
		return tpl.Rule
	}

	t.Run("ratio pushes k symbols", func(t *testing.T) {
		out := get("anb3n").Evaluate("a", domain.Stack{}, domain.StateQ0)
		assert.Equal(t, []domain.Symbol{domain.SymbolA, domain.SymbolA, domain.SymbolA}, out.Push)
	})

	t.Run("empty pop requests underflow", func(t *testing.T) {
		out := get("anbn").Evaluate("b", domain.Stack{}, domain.StateQ0)
		assert.Equal(t, 1, out.Pop)
		assert.False(t, out.Reject)
	})

	t.Run("mirror mismatch rejects", func(t *testing.T) {
		out := get("palindrome").Evaluate("a", domain.Stack{domain.SymbolX}, domain.StateQ1)
		assert.True(t, out.Reject)
	})

	t.Run("mirror on empty stack underflows", func(t *testing.T) {
		out := get("palindrome").Evaluate("b", domain.Stack{}, domain.StateQ1)
		assert.Equal(t, domain.Outcome{Pop: 1, Next: domain.StateQ1}, out)
	})

	t.Run("extra_bs records surplus", func(t *testing.T) {
		out := get("extra_bs").Evaluate("b", domain.Stack{}, domain.StateQ1)
		assert.Equal(t, []domain.Symbol{domain.SymbolX}, out.Push)

		end := get("extra_bs").Evaluate(domain.EndOfInput, domain.Stack{}, domain.StateQ1)
		assert.False(t, end.Accept)
	})

	t.Run("multi_marker needs balanced prefix", func(t *testing.T) {
		out := get("multi_marker").Evaluate("c", domain.Stack{domain.SymbolA}, domain.StateQ1)
		assert.True(t, out.Reject)

		end := get("multi_marker").Evaluate(domain.EndOfInput, domain.Stack{domain.SymbolX}, domain.StateQ2)
		assert.True(t, end.Accept)
	})

	t.Run("nested inner b pops outer A", func(t *testing.T) {
		out := get("nested").Evaluate("b", domain.Stack{domain.SymbolA}, domain.StateQ2)
		assert.Equal(t, domain.Outcome{Pop: 1, Next: domain.StateQ3}, out)

		// An A still under X means the inner block is unbalanced.
		out = get("nested").Evaluate("b", domain.Stack{domain.SymbolA, domain.SymbolX}, domain.StateQ2)
		assert.Equal(t, domain.Rejected(), out)

		out = get("nested").Evaluate("a", domain.Stack{domain.SymbolA}, domain.StateQ2)
		assert.Equal(t, domain.Rejected(), out)
	})

	t.Run("empty word accepted by ratio family", func(t *testing.T) {
		for _, id := range []string{"anbn", "anb2n", "anb3n", "a2n_bn"} {
			end := get(id).Evaluate(domain.EndOfInput, domain.Stack{}, domain.StateQ0)
			assert.True(t, end.Accept, id)
		}
	})
}
