package quiz_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat/pkg/quiz"
	"github.com/aretw0/pdaboat/pkg/templates"
)

func TestDefault_ReferencesKnownTemplates(t *testing.T) {
	bank := quiz.Default()
	reg := templates.MustDefault()

	for _, info := range reg.Infos() {
		for _, q := range bank.ForTemplate(info.ID) {
			if q.Template != "" {
				_, ok := reg.Get(q.Template)
				assert.True(t, ok, "quiz %s names unknown template %s", q.ID, q.Template)
			}
		}
	}
}

func TestForTemplate_SpecificFirst(t *testing.T) {
	bank := quiz.Default()

	qs := bank.ForTemplate("palindrome")
	require.NotEmpty(t, qs)
	assert.Equal(t, "palindrome", qs[0].Template)
	assert.Empty(t, qs[len(qs)-1].Template)

	for _, q := range bank.ForTemplate("even_as") {
		assert.Empty(t, q.Template, "even_as has no questions of its own")
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		step, total int
		want        quiz.Difficulty
	}{
		{0, 10, quiz.Easy},
		{2, 10, quiz.Easy},
		{3, 10, quiz.Medium},
		{5, 10, quiz.Medium},
		{6, 10, quiz.Hard},
		{8, 10, quiz.Hard},
		{9, 10, quiz.Tricky},
		{10, 10, quiz.Tricky},
		{3, 0, quiz.Easy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quiz.Tier(tt.step, tt.total), "%d/%d", tt.step, tt.total)
	}
}

func TestRandom(t *testing.T) {
	bank := quiz.Default()
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 20; i++ {
		q, ok := bank.Random("anbn", quiz.Hard, rng)
		require.True(t, ok)
		assert.Equal(t, quiz.Hard, q.Difficulty)
		assert.Contains(t, []string{"anbn", ""}, q.Template)
	}

	// No tricky anbn question and only one general one.
	q, _ := bank.Random("anbn", quiz.Tricky, rng)
	assert.Equal(t, "general-ww", q.ID)

	q, _ = bank.Progressive("anb2n", 9, 10, rng)
	assert.Equal(t, quiz.Tricky, q.Difficulty)

	q, ok := bank.Random("anbn", "", nil)
	assert.True(t, ok)
	assert.NotEmpty(t, q.ID)
}

func TestRandom_FallsBackToFirst(t *testing.T) {
	bank, err := quiz.Parse([]byte(`
questions:
  - id: only
    difficulty: easy
    question: q
    options: [a, b]
    answer: 1
    explanation: e
`))
	require.NoError(t, err)
	q, ok := bank.Random("anbn", quiz.Tricky, nil)
	assert.True(t, ok)
	assert.Equal(t, "only", q.ID)
}

func TestRandom_NothingForTemplate(t *testing.T) {
	bank, err := quiz.Parse([]byte(`
questions:
  - id: anbn-only
    template: anbn
    difficulty: easy
    question: q
    options: [a, b]
    answer: 0
    explanation: e
`))
	require.NoError(t, err)

	_, ok := bank.Progressive("palindrome", 3, 6, nil)
	assert.False(t, ok)

	q, ok := bank.Progressive("anbn", 3, 6, nil)
	assert.True(t, ok)
	assert.Equal(t, "anbn-only", q.ID)
}

func TestCheck(t *testing.T) {
	bank := quiz.Default()

	ok, q, err := bank.Check("anbn-final-stack", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, q.Explanation)

	ok, _, err = bank.Check("anbn-final-stack", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = bank.Check("nope", 0)
	assert.ErrorIs(t, err, quiz.ErrQuizNotFound)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":          `questions: []`,
		"missing id":     "questions:\n  - difficulty: easy\n    options: [a]\n    answer: 0\n",
		"bad answer":     "questions:\n  - id: x\n    difficulty: easy\n    options: [a]\n    answer: 3\n",
		"bad difficulty": "questions:\n  - id: x\n    difficulty: brutal\n    options: [a]\n    answer: 0\n",
		"duplicate":      "questions:\n  - {id: x, difficulty: easy, options: [a], answer: 0}\n  - {id: x, difficulty: easy, options: [a], answer: 0}\n",
		"not yaml":       "questions: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := quiz.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
