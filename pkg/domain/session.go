package domain

import "time"

// Session is the persisted state of one playback session: run parameters and cursor only.
// Traces are regenerated on demand.
type Session struct {
	ID          string     `json:"id"`
	TemplateID  string     `json:"template_id"`
	Input       string     `json:"input"`
	Mode        Mode       `json:"mode"`
	Cursor      int        `json:"cursor"` // Number of steps already applied
	Prediction  Prediction `json:"prediction,omitempty"`
	PendingQuiz string     `json:"pending_quiz,omitempty"`
	Score       Score      `json:"score"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewSession creates a session positioned before the first step.
func NewSession(id, templateID, input string, mode Mode) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         id,
		TemplateID: templateID,
		Input:      input,
		Mode:       mode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a copy safe for independent mutation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
