package pdaboat

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/pdaboat/internal/logging"
	"github.com/aretw0/pdaboat/internal/runtime"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/templates"
)

const tracerName = "github.com/aretw0/pdaboat"

// Simulator is the high-level entry point of the library.
// It resolves templates, runs the step generator and reports each run to the configured hooks.
// A Simulator holds no per-run state and is safe for concurrent use.
type Simulator struct {
	registry *templates.Registry
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithRegistry replaces the built-in template catalogue.
func WithRegistry(r *templates.Registry) Option {
	return func(s *Simulator) {
		s.registry = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithTracer sets the OpenTelemetry tracer used for simulation spans.
// Defaults to the global provider, which is a no-op unless the host installs one.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Simulator) {
		s.tracer = tracer
	}
}

// New initializes a Simulator over the built-in catalogue.
func New(opts ...Option) *Simulator {
	s := &Simulator{}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = templates.MustDefault()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// Simulate runs input through the template identified by templateID.
//
// Unknown ids fall back to the registry default (Result.Fallback reports it) and an empty
// mode means micro. Simulate never fails: rejections are part of the returned trace.
func (s *Simulator) Simulate(ctx context.Context, templateID, input string, mode domain.Mode) *domain.Result {
	if mode == "" {
		mode = domain.ModeMicro
	}
	tpl, found := s.registry.Resolve(templateID)
	if !found {
		s.logger.Debug("unknown template, using default", "requested", templateID, "template", tpl.ID)
	}

	ctx, span := s.tracer.Start(ctx, "pdaboat.Simulate", trace.WithAttributes(
		attribute.String("pdaboat.template", tpl.ID),
		attribute.String("pdaboat.mode", string(mode)),
		attribute.Int("pdaboat.input_length", len(input)),
	))
	defer span.End()

	steps := runtime.Generate(input, tpl, mode)
	res := &domain.Result{
		TemplateID: tpl.ID,
		Fallback:   !found,
		Input:      input,
		Mode:       mode,
		Trace:      steps,
		Verdict:    steps.Verdict(),
	}

	span.SetAttributes(
		attribute.String("pdaboat.verdict", string(res.Verdict)),
		attribute.Int("pdaboat.steps", steps.Len()),
	)
	if failure := steps.Failure(); failure != "" {
		span.AddEvent("failure", trace.WithAttributes(attribute.String("pdaboat.reason", failure)))
	}

	s.emit(ctx, res)

	s.logger.Debug("simulation finished",
		"template", res.TemplateID,
		"mode", res.Mode,
		"steps", steps.Len(),
		"verdict", res.Verdict,
	)
	return res
}

func (s *Simulator) emit(ctx context.Context, res *domain.Result) {
	base := func(t domain.EventType) domain.EventBase {
		return domain.EventBase{
			Timestamp:  time.Now(),
			Type:       t,
			TemplateID: res.TemplateID,
			Mode:       res.Mode,
		}
	}

	if s.hooks.OnStep != nil {
		for _, step := range res.Trace {
			s.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: base(domain.EventStep),
				Step:      step,
				Total:     res.Trace.Len(),
			})
		}
	}
	if s.hooks.OnVerdict != nil {
		s.hooks.OnVerdict(ctx, &domain.VerdictEvent{
			EventBase: base(domain.EventVerdict),
			Verdict:   res.Verdict,
			Steps:     res.Trace.Len(),
			Failure:   res.Trace.Failure(),
		})
	}
}

// Templates lists the registered templates in catalogue order.
func (s *Simulator) Templates() []domain.TemplateInfo {
	return s.registry.Infos()
}

// Template performs a strict lookup by id.
func (s *Simulator) Template(id string) (domain.Template, bool) {
	return s.registry.Get(id)
}

// Registry exposes the underlying template registry.
func (s *Simulator) Registry() *templates.Registry {
	return s.registry
}
