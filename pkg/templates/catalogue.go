package templates

import (
	"github.com/aretw0/pdaboat/pkg/domain"
)

// Catalogue returns the built-in templates in display order.
// Every call returns fresh values; callers may not mutate the shared rules anyway.
func Catalogue() []domain.Template {
	return []domain.Template{
		{
			ID:          "anbn",
			Name:        "aⁿ bⁿ",
			Description: "Push 1 A per a, pop 1 A per b. Accept if stack empty.",
			Examples:    []string{"aabb", "aaabbb", "ab"},
			Rule:        ratio(1),
		},
		{
			ID:          "anb2n",
			Name:        "aⁿ b²ⁿ",
			Description: "Push 2 A per a, pop 1 A per b.",
			Examples:    []string{"abb", "aabbbb", "aaabbbbbb"},
			Rule:        ratio(2),
		},
		{
			ID:          "anb3n",
			Name:        "aⁿ b³ⁿ",
			Description: "Push 3 A per a, pop 1 A per b.",
			Examples:    []string{"abbb", "aabbbbbb"},
			Rule:        ratio(3),
		},
		{
			ID:          "an_hash_bn",
			Name:        "aⁿ # bⁿ",
			Description: "Push a until #, then pop b.",
			Examples:    []string{"aa#bb", "aaa#bbb"},
			Rule:        domain.RuleFunc(hashMarker),
		},
		{
			ID:          "a2n_bn",
			Name:        "a²ⁿ bⁿ",
			Description: "Push 1 A per 2 a, pop 1 A per b.",
			Examples:    []string{"aab", "aaaabb", "aaaaaabbb"},
			Rule:        domain.RuleFunc(doubleA),
		},
		{
			ID:          "palindrome",
			Name:        "w # reverse(w)",
			Description: "Mirror pattern: push until #, then match pop.",
			Examples:    []string{"aba#aba", "aa#aa", "abba#abba"},
			Rule:        domain.RuleFunc(mirror),
		},
		{
			ID:          "alternating",
			Name:        "(ab)ⁿ",
			Description: "Alternating a,b pairs with stack push/pop.",
			Examples:    []string{"ab", "abab", "ababab"},
			Rule:        domain.RuleFunc(alternating),
		},
		{
			ID:          "extra_bs",
			Name:        "aⁿ bⁿ⁺ᵏ",
			Description: "More b than a, detect extra b in stack.",
			Examples:    []string{"aabbb", "abb", "aaabbbbbb"},
			Rule:        domain.RuleFunc(extraBs),
		},
		{
			ID:          "mixed_xy",
			Name:        "aⁿ bⁿ + xᵐ yᵐ",
			Description: "Two patterns with X,Y stack symbols.",
			Examples:    []string{"aabb", "xxyy", "aabbxxyy"},
			Rule:        domain.RuleFunc(mixedXY),
		},
		{
			ID:          "nested",
			Name:        "aⁿ bᵐ aᵐ bⁿ",
			Description: "Nested pattern demonstration.",
			Examples:    []string{"abab", "aababb", "abbaab"},
			Rule:        domain.RuleFunc(nested),
		},
		{
			ID:          "simple_balance",
			Name:        "Balanced Parentheses ()",
			Description: "Push on (, pop on ). Accept if balanced.",
			Examples:    []string{"()", "(())", "((()))"},
			Rule:        domain.RuleFunc(balanced),
		},
		{
			ID:          "even_as",
			Name:        "Even number of a",
			Description: "Count a using stack, accept if even.",
			Examples:    []string{"aa", "aaaa", "aaaaaa"},
			Rule:        domain.RuleFunc(evenAs),
		},
		{
			ID:          "triple_match",
			Name:        "aⁿ bⁿ cⁿ (limited)",
			Description: "Shows PDA limits - can only match 2.",
			Examples:    []string{"abc", "aabbcc"},
			Rule:        domain.RuleFunc(tripleMatch),
		},
		{
			ID:          "multi_marker",
			Name:        "aⁿ bⁿ c dᵐ",
			Description: "Marker c separates two patterns.",
			Examples:    []string{"aaabbbcd", "abcdd"},
			Rule:        domain.RuleFunc(multiMarker),
		},
		{
			ID:          "custom",
			Name:        "Custom Template",
			Description: "Define your own push/pop rules.",
			Examples:    []string{"ab", "aabb"},
			Rule:        domain.RuleFunc(custom),
		},
	}
}

func repeat(sym domain.Symbol, n int) []domain.Symbol {
	out := make([]domain.Symbol, n)
	for i := range out {
		out[i] = sym
	}
	return out
}

func in(state domain.State, states ...domain.State) bool {
	for _, s := range states {
		if state == s {
			return true
		}
	}
	return false
}

// popIfTop pops when the top matches want. An empty stack still requests the pop so the
// engine reports an underflow; any other top is a mismatch.
func popIfTop(stack domain.Stack, want domain.Symbol, next domain.State) domain.Outcome {
	if stack.Empty() || stack.TopIs(want) {
		return domain.Outcome{Pop: 1, Next: next}
	}
	return domain.Rejected()
}

// ratio builds aⁿ bᵏⁿ: k pushes per a, one pop per b.
func ratio(k int) domain.Rule {
	return domain.RuleFunc(func(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
		switch {
		case state == domain.StateQ0 && symbol == "a":
			return domain.Outcome{Push: repeat(domain.SymbolA, k), Next: domain.StateQ0}
		case in(state, domain.StateQ0, domain.StateQ1) && symbol == "b":
			return domain.Outcome{Pop: 1, Next: domain.StateQ1}
		case in(state, domain.StateQ0, domain.StateQ1) && symbol == domain.EndOfInput:
			return domain.Decide(stack.Empty())
		}
		return domain.Rejected()
	})
}

func hashMarker(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == "#":
		return domain.Outcome{Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "b":
		return domain.Outcome{Pop: 1, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

func doubleA(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case in(state, domain.StateQ0, domain.StateQ2) && symbol == "b":
		return domain.Outcome{Pop: 1, Next: domain.StateQ2}
	case in(state, domain.StateQ0, domain.StateQ2) && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

func mirror(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == "b":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolX}, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == "#":
		return domain.Outcome{Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "a":
		return popIfTop(stack, domain.SymbolA, domain.StateQ1)
	case state == domain.StateQ1 && symbol == "b":
		return popIfTop(stack, domain.SymbolX, domain.StateQ1)
	case state == domain.StateQ1 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

func alternating(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case in(state, domain.StateQ0, domain.StateQ1) && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "b":
		return domain.Outcome{Pop: 1, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

// extraBs accepts only when at least one surplus b was recorded as an X.
// A b pops whatever is on top, so a later b can cancel an earlier surplus.
func extraBs(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case in(state, domain.StateQ0, domain.StateQ1) && symbol == "b":
		if !stack.Empty() {
			return domain.Outcome{Pop: 1, Next: domain.StateQ1}
		}
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolX}, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Count(domain.SymbolX) > 0)
	}
	return domain.Rejected()
}

func mixedXY(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case in(state, domain.StateQ0, domain.StateQ1) && symbol == "b":
		return popIfTop(stack, domain.SymbolA, domain.StateQ1)
	case in(state, domain.StateQ0, domain.StateQ1) && symbol == "x":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolX}, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "y":
		return popIfTop(stack, domain.SymbolX, domain.StateQ1)
	case state == domain.StateQ1 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

// nested tracks the outer a/b pair with A and the inner b/a pair with X.
func nested(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case in(state, domain.StateQ0, domain.StateQ1) && symbol == "b":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolX}, Next: domain.StateQ1}
	case in(state, domain.StateQ1, domain.StateQ2) && symbol == "a":
		return popIfTop(stack, domain.SymbolX, domain.StateQ2)
	case in(state, domain.StateQ2, domain.StateQ3) && symbol == "b":
		return popIfTop(stack, domain.SymbolA, domain.StateQ3)
	case in(state, domain.StateQ0, domain.StateQ2, domain.StateQ3) && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

func balanced(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "(":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == ")":
		return domain.Outcome{Pop: 1, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

func evenAs(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "a":
		return domain.Outcome{Pop: 1, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

// tripleMatch swaps an A for an X on each b and pops an X on each c. It accepts aⁿbⁿcⁿ but,
// having a single stack, cannot enforce the full ordering of the three blocks.
func tripleMatch(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case in(state, domain.StateQ0, domain.StateQ1) && symbol == "b":
		return domain.Outcome{Pop: 1, Push: []domain.Symbol{domain.SymbolX}, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "c":
		return domain.Outcome{Pop: 1, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}

// multiMarker requires aⁿbⁿ before the c marker, then counts d's without ever checking them:
// reaching q2 is enough to accept, whatever the stack holds.
func multiMarker(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case in(state, domain.StateQ0, domain.StateQ1) && symbol == "b":
		return domain.Outcome{Pop: 1, Next: domain.StateQ1}
	case state == domain.StateQ1 && symbol == "c":
		if !stack.Empty() {
			return domain.Rejected()
		}
		return domain.Outcome{Next: domain.StateQ2}
	case state == domain.StateQ2 && symbol == "d":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolX}, Next: domain.StateQ2}
	case state == domain.StateQ2 && symbol == domain.EndOfInput:
		return domain.Decide(true)
	}
	return domain.Rejected()
}

func custom(symbol string, stack domain.Stack, state domain.State) domain.Outcome {
	switch {
	case state == domain.StateQ0 && symbol == "a":
		return domain.Outcome{Push: []domain.Symbol{domain.SymbolA}, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == "b":
		return domain.Outcome{Pop: 1, Next: domain.StateQ0}
	case state == domain.StateQ0 && symbol == domain.EndOfInput:
		return domain.Decide(stack.Empty())
	}
	return domain.Rejected()
}
