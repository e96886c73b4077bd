package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type scoredRun struct {
	v Verdict
	p Prediction
}

func TestScore_Record(t *testing.T) {
	tests := []struct {
		name       string
		runs       []scoredRun
		wantScore  Score
		acceptRate int
		predRate   int
	}{
		{
			name:      "Empty",
			wantScore: Score{},
		},
		{
			name: "Correct Accept Builds Streak",
			runs: []scoredRun{
				{VerdictAccept, PredictionAccept},
				{VerdictAccept, PredictionAccept},
			},
			wantScore:  Score{Played: 2, Accepted: 2, CorrectPredictions: 2, Streak: 2},
			acceptRate: 100,
			predRate:   100,
		},
		{
			name: "Correct Reject Still Resets Streak",
			runs: []scoredRun{
				{VerdictAccept, PredictionAccept},
				{VerdictReject, PredictionReject},
			},
			wantScore:  Score{Played: 2, Accepted: 1, CorrectPredictions: 2, Streak: 0},
			acceptRate: 50,
			predRate:   100,
		},
		{
			name: "Wrong Prediction",
			runs: []scoredRun{
				{VerdictAccept, PredictionReject},
				{VerdictReject, PredictionNone},
				{VerdictReject, PredictionAccept},
			},
			wantScore:  Score{Played: 3, Accepted: 1},
			acceptRate: 33,
			predRate:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			for _, r := range tt.runs {
				s.Record(r.v, r.p)
			}
			assert.Equal(t, tt.wantScore, s)
			assert.Equal(t, tt.acceptRate, s.AcceptanceRate())
			assert.Equal(t, tt.predRate, s.PredictionRate())
		})
	}
}

func TestScore_RecordQuiz(t *testing.T) {
	var s Score
	s.RecordQuiz(true)
	s.RecordQuiz(false)
	assert.Equal(t, 2, s.QuizAnswered)
	assert.Equal(t, 1, s.QuizCorrect)
}

func TestParsePrediction(t *testing.T) {
	p, err := ParsePrediction(" Accept ")
	assert.NoError(t, err)
	assert.Equal(t, PredictionAccept, p)

	p, err = ParsePrediction("")
	assert.NoError(t, err)
	assert.Equal(t, PredictionNone, p)

	_, err = ParsePrediction("maybe")
	assert.Error(t, err)
}
