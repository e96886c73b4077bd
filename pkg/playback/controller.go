package playback

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/pdaboat/internal/logging"
	"github.com/aretw0/pdaboat/pkg/domain"
)

// DefaultPace returns the delay between two steps when running to the end.
func DefaultPace(mode domain.Mode) time.Duration {
	if mode == domain.ModeBatch {
		return 300 * time.Millisecond
	}
	return 600 * time.Millisecond
}

// Event describes one applied step.
type Event struct {
	TemplateID string
	Step       domain.Step
	Index      int // 0-based position of Step
	Total      int
	Quiz       bool // The policy asked for a quiz after this step
}

// Final reports whether the event carries the last step of the trace.
func (e Event) Final() bool {
	return e.Index == e.Total-1
}

// Hooks are notified synchronously while playing.
type Hooks struct {
	OnStep     func(context.Context, Event)
	OnQuiz     func(context.Context, Event)
	OnComplete func(context.Context, Event)
}

// Controller walks a trace one step at a time.
//
// It only reads the trace. Its observable state (stack, automaton state, progress) is the
// StackAfter/State of the most recently applied step. A Controller is not safe for
// concurrent use; a new run gets a new Controller.
type Controller struct {
	trace      domain.Trace
	templateID string
	cursor     int
	quizDue    bool
	policy     QuizPolicy
	hooks      Hooks
	logger     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithCursor resumes playback after n already applied steps.
func WithCursor(n int) Option {
	return func(c *Controller) {
		c.cursor = n
	}
}

// WithHooks registers playback callbacks.
func WithHooks(h Hooks) Option {
	return func(c *Controller) {
		c.hooks = h
	}
}

// WithQuizPolicy replaces the default quiz policy.
func WithQuizPolicy(p QuizPolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a controller positioned before the first step of trace.
func New(trace domain.Trace, templateID string, opts ...Option) *Controller {
	c := &Controller{
		trace:      trace,
		templateID: templateID,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy == nil {
		c.policy = DefaultQuizPolicy()
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.cursor = min(max(c.cursor, 0), len(c.trace))
	return c
}

// Next applies the next step. It returns domain.ErrPlaybackComplete once every step has
// been applied.
func (c *Controller) Next(ctx context.Context) (domain.Step, error) {
	if c.Done() {
		return domain.Step{}, domain.ErrPlaybackComplete
	}

	ev := Event{
		TemplateID: c.templateID,
		Step:       c.trace[c.cursor],
		Index:      c.cursor,
		Total:      len(c.trace),
	}
	ev.Quiz = c.policy.ShouldQuiz(ev.Index, ev.Total, c.templateID)
	c.cursor++
	c.quizDue = ev.Quiz

	c.logger.Debug("playback step", "template", c.templateID, "step", ev.Step.Index, "total", ev.Total, "quiz", ev.Quiz)

	if c.hooks.OnStep != nil {
		c.hooks.OnStep(ctx, ev)
	}
	if ev.Quiz && c.hooks.OnQuiz != nil {
		c.hooks.OnQuiz(ctx, ev)
	}
	if ev.Final() && c.hooks.OnComplete != nil {
		c.hooks.OnComplete(ctx, ev)
	}
	return ev.Step, nil
}

// RunToEnd applies the remaining steps, waiting pace before each one.
// It stops early with the context error when ctx is cancelled; steps already applied stay
// applied and playback can resume from the cursor.
func (c *Controller) RunToEnd(ctx context.Context, pace time.Duration) error {
	for !c.Done() {
		if err := wait(ctx, pace); err != nil {
			return err
		}
		if _, err := c.Next(ctx); err != nil {
			return err
		}
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// QuizDue reports whether the policy asked for a quiz after the most recent step.
func (c *Controller) QuizDue() bool {
	return c.quizDue
}

// Cursor is the number of applied steps.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Total is the length of the trace.
func (c *Controller) Total() int {
	return len(c.trace)
}

// Done reports whether every step has been applied.
func (c *Controller) Done() bool {
	return c.cursor >= len(c.trace)
}

// Progress is the fraction of applied steps, from 0 to 1.
func (c *Controller) Progress() float64 {
	if len(c.trace) == 0 {
		return 0
	}
	return min(float64(c.cursor)/float64(len(c.trace)), 1)
}

// Current returns the most recently applied step.
func (c *Controller) Current() (domain.Step, bool) {
	return c.trace.At(c.cursor - 1)
}

// Stack returns a copy of the observable stack.
func (c *Controller) Stack() domain.Stack {
	if step, ok := c.Current(); ok {
		return step.StackAfter.Clone()
	}
	return domain.Stack{}
}

// State returns the observable automaton state.
func (c *Controller) State() domain.State {
	if step, ok := c.Current(); ok {
		return step.State
	}
	return domain.InitialState
}

// Verdict returns the outcome once playback is complete.
func (c *Controller) Verdict() (domain.Verdict, bool) {
	if !c.Done() || len(c.trace) == 0 {
		return "", false
	}
	return c.trace.Verdict(), true
}
