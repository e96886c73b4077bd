package playback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat/pkg/playback"
)

func TestDefaultQuizPolicy(t *testing.T) {
	p := playback.DefaultQuizPolicy()
	assert.Equal(t, playback.DefaultQuizExpr, p.String())

	var fired []int
	for i := 0; i < 10; i++ {
		if p.ShouldQuiz(i, 10, "anbn") {
			fired = append(fired, i)
		}
	}
	assert.Equal(t, []int{3, 6, 9}, fired)
}

func TestExprPolicy(t *testing.T) {
	p, err := playback.NewExprPolicy(`template == "palindrome" && progress >= 0.5`)
	require.NoError(t, err)

	assert.False(t, p.ShouldQuiz(0, 4, "palindrome"))
	assert.True(t, p.ShouldQuiz(1, 4, "palindrome"))
	assert.False(t, p.ShouldQuiz(3, 4, "anbn"))
	assert.False(t, p.ShouldQuiz(0, 0, "palindrome"))
}

func TestNewExprPolicy_Errors(t *testing.T) {
	_, err := playback.NewExprPolicy("index + 1")
	assert.Error(t, err, "non-boolean result")

	_, err = playback.NewExprPolicy("unknown > 1")
	assert.Error(t, err, "undefined variable")
}
