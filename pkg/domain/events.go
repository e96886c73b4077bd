package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep    EventType = "step"
	EventVerdict EventType = "verdict"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	TemplateID string    `json:"template_id"`
	Mode       Mode      `json:"mode"`
}

// StepEvent reports one generated step.
type StepEvent struct {
	EventBase
	Step  Step `json:"step"`
	Total int  `json:"total"`
}

// VerdictEvent reports the end of a run.
type VerdictEvent struct {
	EventBase
	Verdict Verdict `json:"verdict"`
	Steps   int     `json:"steps"`
	Failure string  `json:"failure,omitempty"`
}

// LifecycleHooks defines callbacks for simulation observability.
// Hooks are read-only consumers: they must not retain or mutate the steps they receive.
type LifecycleHooks struct {
	OnStep    func(context.Context, *StepEvent)
	OnVerdict func(context.Context, *VerdictEvent)
}

// Merge returns hooks that invoke h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(ctx context.Context, e *StepEvent) {
			if h.OnStep != nil {
				h.OnStep(ctx, e)
			}
			if other.OnStep != nil {
				other.OnStep(ctx, e)
			}
		},
		OnVerdict: func(ctx context.Context, e *VerdictEvent) {
			if h.OnVerdict != nil {
				h.OnVerdict(ctx, e)
			}
			if other.OnVerdict != nil {
				other.OnVerdict(ctx, e)
			}
		},
	}
}
