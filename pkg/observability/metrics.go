package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/pdaboat/pkg/domain"
)

// Metrics groups the collectors of one process.
type Metrics struct {
	Traces        *prometheus.CounterVec
	TraceSteps    *prometheus.HistogramVec
	Failures      *prometheus.CounterVec
	PlaybackSteps prometheus.Counter
	QuizAnswers   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg (skipped when reg is nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdaboat_traces_total",
				Help: "Total number of generated traces",
			},
			[]string{"template", "mode", "verdict"},
		),
		TraceSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pdaboat_trace_steps",
				Help:    "Number of steps per generated trace",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"template"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdaboat_failures_total",
				Help: "Traces that ended early, by error tag",
			},
			[]string{"template", "reason"},
		),
		PlaybackSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pdaboat_playback_steps_total",
			Help: "Steps applied by playback controllers",
		}),
		QuizAnswers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdaboat_quiz_answers_total",
				Help: "Quiz answers submitted",
			},
			[]string{"correct"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Traces, m.TraceSteps, m.Failures, m.PlaybackSteps, m.QuizAnswers)
	}
	return m
}

// Hooks reports every finished simulation.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			m.Traces.WithLabelValues(e.TemplateID, string(e.Mode), string(e.Verdict)).Inc()
			m.TraceSteps.WithLabelValues(e.TemplateID).Observe(float64(e.Steps))
			if e.Failure != "" {
				m.Failures.WithLabelValues(e.TemplateID, e.Failure).Inc()
			}
		},
	}
}

// ObservePlaybackStep counts one applied playback step.
func (m *Metrics) ObservePlaybackStep() {
	m.PlaybackSteps.Inc()
}

// ObserveQuizAnswer counts one quiz answer.
func (m *Metrics) ObserveQuizAnswer(correct bool) {
	m.QuizAnswers.WithLabelValues(strconv.FormatBool(correct)).Inc()
}
