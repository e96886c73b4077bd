package domain

import (
	"fmt"
	"math"
	"strings"
)

// Prediction is the player's guess made before a run starts.
type Prediction string

const (
	PredictionNone   Prediction = ""
	PredictionAccept Prediction = "accept"
	PredictionReject Prediction = "reject"
)

// ParsePrediction accepts "accept", "reject" or the empty string.
func ParsePrediction(s string) (Prediction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PredictionNone, nil
	case string(PredictionAccept):
		return PredictionAccept, nil
	case string(PredictionReject):
		return PredictionReject, nil
	}
	return "", fmt.Errorf("invalid prediction %q (expected accept or reject)", s)
}

// Score is the scoreboard of a player across runs.
type Score struct {
	Played             int `json:"played"`
	Accepted           int `json:"accepted"`
	CorrectPredictions int `json:"correct_predictions"`
	Streak             int `json:"streak"`
	QuizAnswered       int `json:"quiz_answered,omitempty"`
	QuizCorrect        int `json:"quiz_correct,omitempty"`
}

// Record books a finished run.
// The streak only grows on a correctly predicted acceptance; any rejection resets it,
// even a correctly predicted one.
func (s *Score) Record(verdict Verdict, prediction Prediction) {
	s.Played++
	if verdict == VerdictAccept {
		s.Accepted++
		if prediction == PredictionAccept {
			s.CorrectPredictions++
			s.Streak++
		} else {
			s.Streak = 0
		}
		return
	}

	s.Streak = 0
	if prediction == PredictionReject {
		s.CorrectPredictions++
	}
}

// RecordQuiz books a quiz answer.
func (s *Score) RecordQuiz(correct bool) {
	s.QuizAnswered++
	if correct {
		s.QuizCorrect++
	}
}

// AcceptanceRate is the rounded percentage of accepted runs.
func (s Score) AcceptanceRate() int {
	return percent(s.Accepted, s.Played)
}

// PredictionRate is the rounded percentage of correct predictions over runs played.
func (s Score) PredictionRate() int {
	return percent(s.CorrectPredictions, s.Played)
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
