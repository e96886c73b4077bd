/*
Package observability exports Prometheus metrics for simulations, playback and quizzes.

Metrics are wired as domain.LifecycleHooks so any Simulator can report them without
depending on Prometheus:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	sim := pdaboat.New(pdaboat.WithLifecycleHooks(metrics.Hooks()))
*/
package observability
