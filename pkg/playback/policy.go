package playback

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultQuizExpr interjects a quiz on every third step after the first.
const DefaultQuizExpr = "index > 0 && index % 3 == 0"

// QuizPolicy decides whether a quiz follows the step at the 0-based index.
// It sees only the position, the trace length and the template id.
type QuizPolicy interface {
	ShouldQuiz(index, total int, templateID string) bool
}

// QuizPolicyFunc adapts a function to QuizPolicy.
type QuizPolicyFunc func(index, total int, templateID string) bool

func (f QuizPolicyFunc) ShouldQuiz(index, total int, templateID string) bool {
	return f(index, total, templateID)
}

// Never disables quizzes.
var Never = QuizPolicyFunc(func(int, int, string) bool { return false })

// QuizEnv is the environment visible to policy expressions.
type QuizEnv struct {
	Index    int     `expr:"index"`
	Total    int     `expr:"total"`
	Template string  `expr:"template"`
	Progress float64 `expr:"progress"`
}

// ExprPolicy is a QuizPolicy written as an expr-lang boolean expression over QuizEnv,
// e.g. `template == "palindrome" && progress >= 0.5`.
type ExprPolicy struct {
	source  string
	program *vm.Program
}

// NewExprPolicy compiles code. Compilation fails on unknown variables or a non-boolean result.
func NewExprPolicy(code string) (*ExprPolicy, error) {
	program, err := expr.Compile(code, expr.Env(QuizEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile quiz policy %q: %w", code, err)
	}
	return &ExprPolicy{source: code, program: program}, nil
}

// DefaultQuizPolicy returns the compiled DefaultQuizExpr.
func DefaultQuizPolicy() *ExprPolicy {
	p, err := NewExprPolicy(DefaultQuizExpr)
	if err != nil {
		panic(err)
	}
	return p
}

// ShouldQuiz evaluates the expression. Runtime errors count as false.
func (p *ExprPolicy) ShouldQuiz(index, total int, templateID string) bool {
	env := QuizEnv{Index: index, Total: total, Template: templateID}
	if total > 0 {
		env.Progress = float64(index+1) / float64(total)
	}
	out, err := expr.Run(p.program, env)
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

// String returns the source expression.
func (p *ExprPolicy) String() string {
	return p.source
}
