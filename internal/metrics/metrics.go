// Package metrics exposes Prometheus instrumentation for the refresh
// pipeline and the forecast query API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderCalls counts outbound provider calls by provider and outcome.
	ProviderCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfcast_provider_calls_total",
		Help: "Outbound calls to atmospheric/marine providers, by provider and outcome.",
	}, []string{"provider", "outcome"})

	// RefreshRuns counts orchestrator runs by trigger (scheduled, manual, forced).
	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfcast_refresh_runs_total",
		Help: "Orchestrator runs, by trigger.",
	}, []string{"trigger"})

	// RefreshStepOutcomes counts per-step outcomes emitted by the orchestrator.
	RefreshStepOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfcast_refresh_step_outcomes_total",
		Help: "Per-spot, per-layer refresh step outcomes.",
	}, []string{"layer", "outcome"})

	// RefreshDuration observes wall-clock duration of a full RefreshAll pass.
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "surfcast_refresh_duration_seconds",
		Help:    "Duration of a full refresh pass across all spots.",
		Buckets: prometheus.DefBuckets,
	})

	// WindowSelectionRequests counts window-selection calls by variant.
	WindowSelectionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfcast_window_selection_requests_total",
		Help: "Window selector invocations, by variant (generic, weekend, best).",
	}, []string{"variant"})
)
