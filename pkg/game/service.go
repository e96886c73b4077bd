package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/pdaboat/internal/logging"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/observability"
	"github.com/aretw0/pdaboat/pkg/playback"
	"github.com/aretw0/pdaboat/pkg/ports"
	"github.com/aretw0/pdaboat/pkg/quiz"
	"github.com/aretw0/pdaboat/pkg/session"
)

// ErrQuizPending is returned by Advance while a quiz waits for an answer.
var ErrQuizPending = errors.New("quiz pending")

// StartRequest opens a session.
type StartRequest struct {
	ID         string            `json:"id,omitempty"`
	TemplateID string            `json:"template"`
	Input      string            `json:"input"`
	Mode       domain.Mode       `json:"mode,omitempty"`
	Prediction domain.Prediction `json:"prediction,omitempty"`
}

// View is the observable state of a session after an operation.
type View struct {
	Session  *domain.Session `json:"session"`
	Fallback bool            `json:"fallback,omitempty"`
	Total    int             `json:"total"`
	Step     *domain.Step    `json:"step,omitempty"` // Most recently applied step
	Stack    domain.Stack    `json:"stack"`
	State    domain.State    `json:"state"`
	Progress float64         `json:"progress"`
	Done     bool            `json:"done"`
	Verdict  domain.Verdict  `json:"verdict,omitempty"`
	Quiz     *quiz.Question  `json:"quiz,omitempty"`
}

// AnswerResult grades a quiz answer.
type AnswerResult struct {
	Correct     bool         `json:"correct"`
	Answer      int          `json:"answer"`
	Explanation string       `json:"explanation"`
	Score       domain.Score `json:"score"`
}

// Service coordinates simulator, session manager and quiz bank.
type Service struct {
	sim      ports.Simulator
	sessions *session.Manager
	bank     *quiz.Bank
	policy   playback.QuizPolicy
	metrics  *observability.Metrics
	logger   *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithQuizBank replaces the embedded question bank.
func WithQuizBank(b *quiz.Bank) Option {
	return func(s *Service) {
		s.bank = b
	}
}

// WithQuizPolicy replaces the default quiz trigger.
func WithQuizPolicy(p playback.QuizPolicy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithMetrics counts playback steps and quiz answers.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRand makes question selection reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a game service.
func NewService(sim ports.Simulator, sessions *session.Manager, opts ...Option) *Service {
	s := &Service{
		sim:      sim,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bank == nil {
		s.bank = quiz.Default()
	}
	if s.policy == nil {
		s.policy = playback.DefaultQuizPolicy()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Start creates a session positioned before the first step.
// Unknown templates fall back to the default one; the stored session carries the resolved id.
func (s *Service) Start(ctx context.Context, req StartRequest) (*View, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Mode == "" {
		req.Mode = domain.ModeMicro
	}

	res := s.sim.Simulate(ctx, req.TemplateID, req.Input, req.Mode)
	sess := domain.NewSession(req.ID, res.TemplateID, req.Input, req.Mode)
	sess.Prediction = req.Prediction

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("session started", "session_id", sess.ID, "template", sess.TemplateID, "mode", sess.Mode)

	v := s.view(sess, s.controller(sess, res))
	v.Fallback = res.Fallback
	return v, nil
}

// Get returns the current view of a session.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.sim.Simulate(ctx, sess.TemplateID, sess.Input, sess.Mode)
	return s.view(sess, s.controller(sess, res)), nil
}

// Advance applies the next step of the session.
// It fails with ErrQuizPending while a quiz is unanswered and with
// domain.ErrPlaybackComplete once the trace is exhausted.
func (s *Service) Advance(ctx context.Context, id string) (*View, error) {
	var (
		res  *domain.Result
		ctrl *playback.Controller
	)
	sess, err := s.sessions.Update(ctx, id, func(sess *domain.Session) error {
		if sess.PendingQuiz != "" {
			return fmt.Errorf("%s: %w", sess.PendingQuiz, ErrQuizPending)
		}

		res = s.sim.Simulate(ctx, sess.TemplateID, sess.Input, sess.Mode)
		ctrl = s.controller(sess, res)
		if _, err := ctrl.Next(ctx); err != nil {
			return err
		}
		sess.Cursor = ctrl.Cursor()

		if ctrl.QuizDue() {
			if q, ok := s.pick(sess.TemplateID, ctrl.Cursor(), ctrl.Total()); ok {
				sess.PendingQuiz = q.ID
			}
		}
		if verdict, done := ctrl.Verdict(); done {
			sess.Score.Record(verdict, sess.Prediction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObservePlaybackStep()
	}
	return s.view(sess, ctrl), nil
}

// Answer grades the pending quiz and clears it.
func (s *Service) Answer(ctx context.Context, id string, answer int) (*AnswerResult, error) {
	var (
		out   AnswerResult
		stale error
	)
	_, err := s.sessions.Update(ctx, id, func(sess *domain.Session) error {
		if sess.PendingQuiz == "" {
			return domain.ErrNoPendingQuiz
		}
		correct, q, err := s.bank.Check(sess.PendingQuiz, answer)
		if errors.Is(err, quiz.ErrQuizNotFound) {
			// The question left the bank; drop it so playback can go on.
			s.logger.Warn("Dropping unknown pending quiz", "session_id", sess.ID, "quiz", sess.PendingQuiz)
			sess.PendingQuiz = ""
			stale = err
			return nil
		}
		if err != nil {
			return err
		}
		sess.PendingQuiz = ""
		sess.Score.RecordQuiz(correct)

		out = AnswerResult{
			Correct:     correct,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			Score:       sess.Score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if stale != nil {
		return nil, stale
	}

	if s.metrics != nil {
		s.metrics.ObserveQuizAnswer(out.Correct)
	}
	return &out, nil
}

// Restart rewinds the session for a new run, optionally with a new input and prediction.
// The scoreboard is kept.
func (s *Service) Restart(ctx context.Context, id string, input *string, prediction domain.Prediction) (*View, error) {
	var res *domain.Result
	sess, err := s.sessions.Update(ctx, id, func(sess *domain.Session) error {
		if input != nil {
			sess.Input = *input
		}
		sess.Cursor = 0
		sess.PendingQuiz = ""
		sess.Prediction = prediction
		res = s.sim.Simulate(ctx, sess.TemplateID, sess.Input, sess.Mode)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess, s.controller(sess, res)), nil
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.sessions.Load(ctx, id); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, id)
}

// List returns the ids of stored sessions.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.sessions.List(ctx)
}

func (s *Service) controller(sess *domain.Session, res *domain.Result) *playback.Controller {
	return playback.New(res.Trace, res.TemplateID,
		playback.WithCursor(sess.Cursor),
		playback.WithQuizPolicy(s.policy),
		playback.WithLogger(s.logger),
	)
}

func (s *Service) pick(templateID string, step, total int) (quiz.Question, bool) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.bank.Progressive(templateID, step, total, s.rng)
}

func (s *Service) view(sess *domain.Session, ctrl *playback.Controller) *View {
	v := &View{
		Session:  sess,
		Total:    ctrl.Total(),
		Stack:    ctrl.Stack(),
		State:    ctrl.State(),
		Progress: ctrl.Progress(),
		Done:     ctrl.Done(),
	}
	if step, ok := ctrl.Current(); ok {
		v.Step = &step
	}
	if verdict, ok := ctrl.Verdict(); ok {
		v.Verdict = verdict
	}
	if sess.PendingQuiz != "" {
		if q, ok := s.bank.Get(sess.PendingQuiz); ok {
			v.Quiz = &q
		}
	}
	return v
}
