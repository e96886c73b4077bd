package observability_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	sim := pdaboat.New(pdaboat.WithLifecycleHooks(metrics.Hooks()))

	ctx := context.Background()
	sim.Simulate(ctx, "anbn", "aabb", domain.ModeMicro)
	sim.Simulate(ctx, "anbn", "ab", domain.ModeMicro)
	sim.Simulate(ctx, "anbn", "ba", domain.ModeBatch)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Traces.WithLabelValues("anbn", "micro", "accept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Traces.WithLabelValues("anbn", "batch", "reject")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues("anbn", domain.ErrorStackUnderflow)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.TraceSteps))
}

func TestMetrics_PlaybackAndQuiz(t *testing.T) {
	metrics := observability.NewMetrics(nil)

	metrics.ObservePlaybackStep()
	metrics.ObservePlaybackStep()
	metrics.ObserveQuizAnswer(true)
	metrics.ObserveQuizAnswer(false)
	metrics.ObserveQuizAnswer(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.PlaybackSteps))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.QuizAnswers.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.QuizAnswers.WithLabelValues("false")))
}
