/*
Package observability provides tools for monitoring the pictograph engine.

It turns engine lifecycle events into Prometheus metrics and structured log
lines. Everything attaches through domain.LifecycleHooks, so the runtime has no
dependency on either.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := pictograph.New(pictograph.WithLifecycleHooks(observability.Chain(
		metrics.Hooks(),
		observability.LoggingHooks(logger),
	)))
*/
package observability
