// Package quiz holds the embedded question bank and picks questions by template and by
// progress-derived difficulty.
package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

// ErrQuizNotFound is returned when a question id is unknown.
var ErrQuizNotFound = errors.New("quiz not found")

// Difficulty tiers, easiest first.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Tricky Difficulty = "tricky"
)

// Question is one multiple-choice question.
type Question struct {
	ID          string     `yaml:"id" json:"id"`
	Template    string     `yaml:"template,omitempty" json:"template,omitempty"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	Question    string     `yaml:"question" json:"question"`
	Options     []string   `yaml:"options" json:"options"`
	Answer      int        `yaml:"answer" json:"-"`
	Explanation string     `yaml:"explanation" json:"explanation"`
}

// Bank is a read-only set of questions.
type Bank struct {
	questions []Question
	byID      map[string]Question
}

// Parse decodes a YAML bank and checks every question.
func Parse(data []byte) (*Bank, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse quiz bank: %w", err)
	}

	b := &Bank{byID: make(map[string]Question, len(doc.Questions))}
	for _, q := range doc.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("quiz %q: missing id", q.Question)
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("quiz %s: duplicate id", q.ID)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("quiz %s: answer %d out of range", q.ID, q.Answer)
		}
		switch q.Difficulty {
		case Easy, Medium, Hard, Tricky:
		default:
			return nil, fmt.Errorf("quiz %s: invalid difficulty %q", q.ID, q.Difficulty)
		}
		b.byID[q.ID] = q
		b.questions = append(b.questions, q)
	}
	if len(b.questions) == 0 {
		return nil, errors.New("quiz bank is empty")
	}
	return b, nil
}

// Default returns the embedded bank.
func Default() *Bank {
	b, err := Parse(bankYAML)
	if err != nil {
		panic(err)
	}
	return b
}

// ForTemplate returns the template's own questions followed by the general ones.
func (b *Bank) ForTemplate(templateID string) []Question {
	var specific, general []Question
	for _, q := range b.questions {
		switch q.Template {
		case templateID:
			specific = append(specific, q)
		case "":
			general = append(general, q)
		}
	}
	return append(specific, general...)
}

// Get looks a question up by id.
func (b *Bank) Get(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Random picks a question for the template, restricted to difficulty when it is not empty.
// When no question has that difficulty it returns the first available question. It reports
// false when the bank holds nothing for the template. A nil rng uses the global source.
func (b *Bank) Random(templateID string, difficulty Difficulty, rng *rand.Rand) (Question, bool) {
	available := b.ForTemplate(templateID)
	if len(available) == 0 {
		return Question{}, false
	}
	filtered := available
	if difficulty != "" {
		filtered = nil
		for _, q := range available {
			if q.Difficulty == difficulty {
				filtered = append(filtered, q)
			}
		}
	}
	if len(filtered) == 0 {
		return available[0], true
	}
	if rng == nil {
		return filtered[rand.IntN(len(filtered))], true
	}
	return filtered[rng.IntN(len(filtered))], true
}

// Progressive picks a question whose difficulty grows with step/total.
func (b *Bank) Progressive(templateID string, step, total int, rng *rand.Rand) (Question, bool) {
	return b.Random(templateID, Tier(step, total), rng)
}

// Tier maps progress to difficulty: below 0.3 easy, below 0.6 medium, below 0.85 hard,
// tricky otherwise.
func Tier(step, total int) Difficulty {
	var progress float64
	if total > 0 {
		progress = float64(step) / float64(total)
	}
	switch {
	case progress < 0.3:
		return Easy
	case progress < 0.6:
		return Medium
	case progress < 0.85:
		return Hard
	}
	return Tricky
}

// Check grades answer (a 0-based option index) for the question id.
func (b *Bank) Check(id string, answer int) (bool, Question, error) {
	q, ok := b.byID[id]
	if !ok {
		return false, Question{}, fmt.Errorf("%s: %w", id, ErrQuizNotFound)
	}
	return answer == q.Answer, q, nil
}
