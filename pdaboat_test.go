package pdaboat_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/templates"
)

func TestSimulate_Accept(t *testing.T) {
	sim := pdaboat.New()
	res := sim.Simulate(context.Background(), "anbn", "aabb", domain.ModeMicro)

	assert.Equal(t, "anbn", res.TemplateID)
	assert.False(t, res.Fallback)
	assert.Equal(t, domain.VerdictAccept, res.Verdict)
	assert.True(t, res.Accepted())
	assert.Len(t, res.Trace, 5)
}

func TestSimulate_UnknownTemplateFallsBack(t *testing.T) {
	sim := pdaboat.New()
	res := sim.Simulate(context.Background(), "no-such-template", "ab", "")

	assert.True(t, res.Fallback)
	assert.Equal(t, templates.DefaultID, res.TemplateID)
	assert.Equal(t, domain.ModeMicro, res.Mode)
	assert.Equal(t, domain.VerdictAccept, res.Verdict)
}

func TestSimulate_CustomRegistry(t *testing.T) {
	reg, err := templates.Default(templates.WithDefault("simple_balance"))
	require.NoError(t, err)

	sim := pdaboat.New(pdaboat.WithRegistry(reg))
	res := sim.Simulate(context.Background(), "", "(())", domain.ModeBatch)

	assert.Equal(t, "simple_balance", res.TemplateID)
	assert.True(t, res.Accepted())
}

func TestSimulate_LifecycleHooks(t *testing.T) {
	var steps []string
	var verdicts []*domain.VerdictEvent

	hooks := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			assert.Equal(t, domain.EventStep, e.Type)
			steps = append(steps, fmt.Sprintf("%s %d/%d", e.TemplateID, e.Step.Index, e.Total))
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			verdicts = append(verdicts, e)
		},
	}

	sim := pdaboat.New(pdaboat.WithLifecycleHooks(hooks))
	sim.Simulate(context.Background(), "anbn", "bb", domain.ModeMicro)
	sim.Simulate(context.Background(), "palindrome", "a#b", domain.ModeMicro)

	assert.Equal(t, []string{"anbn 1/1", "palindrome 1/3", "palindrome 2/3", "palindrome 3/3"}, steps)
	require.Len(t, verdicts, 2)
	assert.Equal(t, domain.VerdictReject, verdicts[0].Verdict)
	assert.Equal(t, domain.ErrorStackUnderflow, verdicts[0].Failure)
	assert.Equal(t, "anbn", verdicts[0].TemplateID)
	assert.Equal(t, domain.EventVerdict, verdicts[1].Type)
	assert.Equal(t, domain.ErrorRejected, verdicts[1].Failure)
	assert.Equal(t, 3, verdicts[1].Steps)
}

func TestTemplates(t *testing.T) {
	sim := pdaboat.New()
	infos := sim.Templates()
	require.Len(t, infos, 15)

	tpl, ok := sim.Template("nested")
	require.True(t, ok)
	assert.Equal(t, "aⁿ bᵐ aᵐ bⁿ", tpl.Name)

	_, ok = sim.Template("missing")
	assert.False(t, ok)
}

func TestSimulate_Concurrent(t *testing.T) {
	sim := pdaboat.New()
	want := sim.Simulate(context.Background(), "palindrome", "abba#abba", domain.ModeMicro)

	done := make(chan *domain.Result, 8)
	for i := 0; i < cap(done); i++ {
		go func() {
			done <- sim.Simulate(context.Background(), "palindrome", "abba#abba", domain.ModeMicro)
		}()
	}
	for i := 0; i < cap(done); i++ {
		assert.Equal(t, want.Trace, (<-done).Trace)
	}
}
